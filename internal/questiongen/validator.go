package questiongen

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError describes why a question failed the structural check.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid question %s: %s", e.Field, e.Message)
}

// Validate checks that q has a non-empty stem and explanation, exactly the
// options A-D with non-empty texts, and a correct key among them.
func Validate(q *Question) *ValidationError {
	if strings.TrimSpace(q.Question) == "" {
		return &ValidationError{Field: "question", Message: "is empty"}
	}
	if len(q.Options) != len(OptionKeys) {
		return &ValidationError{
			Field:   "options",
			Message: fmt.Sprintf("has %d entries, want %d", len(q.Options), len(OptionKeys)),
		}
	}
	for _, k := range OptionKeys {
		text, ok := q.Options[k]
		if !ok {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("missing key %q", k)}
		}
		if strings.TrimSpace(text) == "" {
			return &ValidationError{Field: "options", Message: fmt.Sprintf("option %s is empty", k)}
		}
	}
	if !slices.Contains(OptionKeys, q.Correct) {
		return &ValidationError{Field: "correct", Message: fmt.Sprintf("%q is not one of A-D", q.Correct)}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{Field: "explanation", Message: "is empty"}
	}
	return nil
}
