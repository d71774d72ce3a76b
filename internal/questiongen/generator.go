package questiongen

import "context"

// Generator produces economics questions using an LLM provider.
type Generator interface {
	// Generate produces a single validated question for the given input.
	Generate(ctx context.Context, input GenerateInput) (*Question, error)
}
