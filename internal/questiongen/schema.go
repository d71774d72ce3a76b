package questiongen

import "github.com/abhisek/econiz/internal/llm"

// QuestionSchema defines the JSON schema for LLM question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "econ-question",
	Description: "A single IB Economics multiple choice question with explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The full question text with scenario",
			},
			"options": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"A": map[string]any{"type": "string"},
					"B": map[string]any{"type": "string"},
					"C": map[string]any{"type": "string"},
					"D": map[string]any{"type": "string"},
				},
				"required":             []any{"A", "B", "C", "D"},
				"additionalProperties": false,
			},
			"correct": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D"},
				"description": "Key of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct answer is right and the others are wrong, referencing economic theory",
			},
			"adaptedDifficulty": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 5,
			},
		},
		"required":             []any{"question", "options", "correct", "explanation", "adaptedDifficulty"},
		"additionalProperties": false,
	},
}
