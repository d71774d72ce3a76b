package questiongen

import (
	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/progress"
)

// OptionKeys are the answer labels of every generated question, in order.
var OptionKeys = []string{"A", "B", "C", "D"}

// Question is a generated IB-style multiple choice question.
type Question struct {
	// Question is the full question text, usually with a short scenario.
	Question string `json:"question"`

	// Options maps each of A-D to its option text.
	Options map[string]string `json:"options"`

	// Correct is the key of the correct option.
	Correct string `json:"correct"`

	// Explanation covers why the correct option is right and the
	// distractors are wrong.
	Explanation string `json:"explanation"`

	// AdaptedDifficulty is the difficulty the question was written for.
	AdaptedDifficulty int `json:"adaptedDifficulty"`
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Concept is the target concept.
	Concept catalog.Concept

	// Performance is the learner's record on Concept. Nil when the learner
	// has never attempted it.
	Performance *progress.ConceptProgress

	// LearnedConcepts are names of concepts the learner has mastered. The
	// question may rely on them and nothing beyond.
	LearnedConcepts []string
}
