package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with timeout,
// retry and logging middleware. eventRepo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderGrok:
		base, err = NewGrokProvider(cfg.Grok)
	case ProviderMock:
		base = NewFixtureProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return Wrap(base, cfg, eventRepo, log), nil
}

// Wrap applies the standard middleware: caller → timeout → retry → logging → base.
func Wrap(base Provider, cfg Config, eventRepo store.EventRepo, log *zap.Logger) Provider {
	logged := WithLogging(base, cfg.Provider, eventRepo, log)
	retried := WithRetry(logged, cfg.Retry, log)
	return WithTimeout(retried, cfg.Timeout)
}
