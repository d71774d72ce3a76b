package explain

import (
	"context"

	"github.com/abhisek/econiz/internal/catalog"
)

// Input describes a wrong answer to explain.
type Input struct {
	Concept  catalog.Concept
	Question string

	// StudentAnswer and CorrectAnswer are option keys (e.g. "B").
	StudentAnswer string
	CorrectAnswer string

	// Options maps option keys to their texts. May be nil, in which case
	// the keys are shown on their own.
	Options map[string]string
}

// Explanation is a personalized account of why the learner went wrong.
type Explanation struct {
	LikelyReasoning    string `json:"likelyReasoning"`
	Misconception      string `json:"misconception"`
	CorrectExplanation string `json:"correctExplanation"`
	KeyInsight         string `json:"keyInsight"`
	PracticeAdvice     string `json:"practiceAdvice"`
}

// Explainer produces personalized explanations.
type Explainer interface {
	Explain(ctx context.Context, in Input) (*Explanation, error)
}
