package questiongen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/econiz/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate produces a single question for the given input context.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestion)

	adapt := AdaptDifficulty(input.Concept.Difficulty, input.Performance)
	req := llm.SingleTurn(systemPrompt, buildUserMessage(input, adapt),
		QuestionSchema, g.config.MaxTokens, g.config.Temperature)

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	var q Question
	if err := json.Unmarshal(resp.Content, &q); err != nil {
		return nil, fmt.Errorf("question generation failed: %w",
			&llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}

	if verr := Validate(&q); verr != nil {
		return nil, fmt.Errorf("question generation failed: %w",
			&llm.ErrInvalidResponse{Content: resp.Content, Err: verr})
	}

	// The adapted level is ours to decide, not the model's.
	q.AdaptedDifficulty = adapt.Difficulty
	return &q, nil
}
