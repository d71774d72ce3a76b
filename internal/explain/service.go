package explain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/econiz/internal/llm"
)

// Config controls generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.7}
}

// Service generates explanations with an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates an explanation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Explain asks the provider why the learner picked a wrong option.
func (s *Service) Explain(ctx context.Context, in Input) (*Explanation, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeExplanation)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(in), ExplanationSchema, s.cfg.MaxTokens, s.cfg.Temperature)
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("explanation generation failed: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("explanation generation failed: %w",
			&llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	return &out, nil
}
