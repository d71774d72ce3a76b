package llm

import "fmt"

const defaultGrokBaseURL = "https://api.x.ai/v1"

// grokModels maps friendly names to xAI model IDs.
var grokModels = map[string]string{
	"grok":      "grok-3",
	"grok-mini": "grok-3-mini",
}

// GrokProvider targets xAI's OpenAI-compatible API.
type GrokProvider struct {
	*OpenAIProvider
}

// NewGrokProvider creates a provider for xAI Grok models.
func NewGrokProvider(cfg GrokConfig) (*GrokProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("grok API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGrokBaseURL
	}

	inner := newOpenAICompatible(ProviderGrok, cfg.APIKey, baseURL, resolveModel(cfg.Model, grokModels))
	return &GrokProvider{OpenAIProvider: inner}, nil
}
