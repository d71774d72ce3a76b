package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderGrok       = "grok"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "grok", "mock"
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Grok       GrokConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries. Default: 30s.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.5-flash"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// GrokConfig holds xAI-specific configuration.
type GrokConfig struct {
	APIKey  string
	Model   string // Default: "grok-mini"
	BaseURL string // Default: "https://api.x.ai/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 or less disables retries.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults. Retries are off:
// the learner retries a failed generation by hand.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Grok: GrokConfig{
			Model: "grok-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("ECONIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	setFromEnv(&cfg.Anthropic.APIKey, "ECONIZ_ANTHROPIC_API_KEY")
	setFromEnv(&cfg.Anthropic.Model, "ECONIZ_ANTHROPIC_MODEL")

	setFromEnv(&cfg.OpenAI.APIKey, "ECONIZ_OPENAI_API_KEY")
	setFromEnv(&cfg.OpenAI.Model, "ECONIZ_OPENAI_MODEL")
	setFromEnv(&cfg.OpenAI.BaseURL, "ECONIZ_OPENAI_BASE_URL")

	setFromEnv(&cfg.Gemini.APIKey, "ECONIZ_GEMINI_API_KEY")
	setFromEnv(&cfg.Gemini.Model, "ECONIZ_GEMINI_MODEL")

	setFromEnv(&cfg.OpenRouter.APIKey, "ECONIZ_OPENROUTER_API_KEY")
	setFromEnv(&cfg.OpenRouter.Model, "ECONIZ_OPENROUTER_MODEL")

	setFromEnv(&cfg.Grok.APIKey, "ECONIZ_GROK_API_KEY")
	setFromEnv(&cfg.Grok.Model, "ECONIZ_GROK_MODEL")
	setFromEnv(&cfg.Grok.BaseURL, "ECONIZ_GROK_BASE_URL")

	return cfg
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig checks the standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter, Grok) and returns a Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	for _, env := range []string{"GROK_API_KEY", "XAI_API_KEY"} {
		if k := os.Getenv(env); k != "" {
			cfg.Provider = ProviderGrok
			cfg.Grok.APIKey = k
			return cfg, true
		}
	}

	return Config{}, false
}

// FillStandardKeys sets every empty API key from the provider's standard
// env var (GEMINI_API_KEY, OPENAI_API_KEY and so on).
func (c *Config) FillStandardKeys() {
	fill := func(dst *string, keys ...string) {
		for _, k := range keys {
			if *dst != "" {
				return
			}
			setFromEnv(dst, k)
		}
	}
	fill(&c.Gemini.APIKey, "GEMINI_API_KEY")
	fill(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	fill(&c.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	fill(&c.OpenRouter.APIKey, "OPENROUTER_API_KEY")
	fill(&c.Grok.APIKey, "GROK_API_KEY", "XAI_API_KEY")
}

// SetModel overrides the model of the selected provider.
func (c *Config) SetModel(model string) {
	if model == "" {
		return
	}
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	case ProviderGrok:
		c.Grok.Model = model
	}
}

// Resolve returns the env-configured Config when it validates, otherwise
// the first discovered one. ok is false when no provider has a key.
func Resolve() (Config, bool) {
	cfg := ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	return DiscoverConfig()
}

// apiKeyEnv names the variable holding each provider's API key.
var apiKeyEnv = map[string]string{
	ProviderAnthropic:  "ECONIZ_ANTHROPIC_API_KEY",
	ProviderOpenAI:     "ECONIZ_OPENAI_API_KEY",
	ProviderGemini:     "ECONIZ_GEMINI_API_KEY",
	ProviderOpenRouter: "ECONIZ_OPENROUTER_API_KEY",
	ProviderGrok:       "ECONIZ_GROK_API_KEY",
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case ProviderAnthropic:
		key = c.Anthropic.APIKey
	case ProviderOpenAI:
		key = c.OpenAI.APIKey
	case ProviderGemini:
		key = c.Gemini.APIKey
	case ProviderOpenRouter:
		key = c.OpenRouter.APIKey
	case ProviderGrok:
		key = c.Grok.APIKey
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return &ErrNotConfigured{Provider: c.Provider, Env: apiKeyEnv[c.Provider]}
	}
	return nil
}
