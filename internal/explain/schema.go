package explain

import "github.com/abhisek/econiz/internal/llm"

// ExplanationSchema defines the JSON schema for personalized explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "econ-explanation",
	Description: "Personalized feedback on an incorrect answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"likelyReasoning":    map[string]any{"type": "string", "minLength": 1},
			"misconception":      map[string]any{"type": "string", "minLength": 1},
			"correctExplanation": map[string]any{"type": "string", "minLength": 1},
			"keyInsight":         map[string]any{"type": "string", "minLength": 1},
			"practiceAdvice":     map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"likelyReasoning", "misconception", "correctExplanation", "keyInsight", "practiceAdvice"},
		"additionalProperties": false,
	},
}
