// Package review generates focused mini-lessons for a single concept.
package review

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/progress"
)

// Input holds the concept to review and the learner's record on it.
type Input struct {
	Concept catalog.Concept
	// Performance may be nil.
	Performance *progress.ConceptProgress
}

// Review is an exam-oriented summary of a concept.
type Review struct {
	Definition         string   `json:"definition"`
	KeyPoints          []string `json:"keyPoints"`
	DiagramExplanation string   `json:"diagramExplanation"`
	CommonMistakes     []string `json:"commonMistakes"`
	ExamTips           []string `json:"examTips"`
	RealWorldExample   string   `json:"realWorldExample"`
}

// Reviewer produces concept reviews.
type Reviewer interface {
	Review(ctx context.Context, in Input) (*Review, error)
}

// Config controls generation parameters.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{MaxTokens: 2048, Temperature: 0.7}
}

// Service generates reviews with an LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a review service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

func (s *Service) Review(ctx context.Context, in Input) (*Review, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeReview)

	req := llm.SingleTurn(systemPrompt, buildUserMessage(in), ReviewSchema, s.cfg.MaxTokens, s.cfg.Temperature)
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("review generation failed: %w", err)
	}

	var out Review
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("review generation failed: %w",
			&llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	return &out, nil
}

const systemPrompt = `You are an expert IB Economics HL teacher creating a focused mini-lesson for a student reviewing a concept.`

// performanceContext steers the depth of the review. Empty when the learner
// has not attempted the concept.
func performanceContext(p *progress.ConceptProgress) string {
	if p == nil || p.Attempts == 0 {
		return ""
	}
	switch {
	case p.Confidence < 40:
		return fmt.Sprintf("The student is struggling with this concept (%d%% accuracy). Focus on foundational understanding and clear definitions.", p.Confidence)
	case p.Confidence < 70:
		return fmt.Sprintf("The student has partial understanding (%d%% accuracy). Focus on clarifying common points of confusion.", p.Confidence)
	default:
		return fmt.Sprintf("The student has good understanding (%d%% accuracy). Provide advanced insights and exam tips.", p.Confidence)
	}
}

func buildUserMessage(in Input) string {
	c := in.Concept
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CONCEPT: %s\n", c.Name))
	b.WriteString(fmt.Sprintf("UNIT: %s\n", catalog.UnitDisplayName(c.Unit)))
	b.WriteString(fmt.Sprintf("DESCRIPTION: %s\n", c.Description))
	b.WriteString(fmt.Sprintf("DIFFICULTY LEVEL: %d/5\n", c.Difficulty))
	b.WriteString(fmt.Sprintf("IB COMMAND TERMS: %s\n", joinOr(c.CommandTerms, ", ", "Various")))
	b.WriteString(fmt.Sprintf("KEY DIAGRAMS: %s\n", joinOr(c.KeyDiagrams, ", ", "None specified")))
	b.WriteString(fmt.Sprintf("COMMON MISCONCEPTIONS: %s\n", joinOr(c.CommonMisconceptions, "; ", "None listed")))

	if pc := performanceContext(in.Performance); pc != "" {
		b.WriteString("\n")
		b.WriteString(pc)
		b.WriteString("\n")
	}

	b.WriteString(`
Create a concise but comprehensive review that would help a student master this concept for the IB exam:
- definition: a clear, exam-ready definition in 1-2 sentences using precise economic terminology.
- keyPoints: three essential points, the last connecting to broader economics.
- diagramExplanation: what the key diagram shows and how to draw and label it. If no diagram is central, how the concept connects to others visually.
- commonMistakes: two common exam mistakes and how to avoid them.
- examTips: two tips for IB exam questions on this topic, covering command terms or diagram requirements.
- realWorldExample: a brief, current real-world example that illustrates the concept.`)

	return b.String()
}

func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}

// ReviewSchema defines the JSON schema for concept reviews.
var ReviewSchema = &llm.Schema{
	Name:        "econ-review",
	Description: "Exam-oriented mini-lesson for one concept",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition":         map[string]any{"type": "string", "minLength": 1},
			"keyPoints":          stringList(),
			"diagramExplanation": map[string]any{"type": "string"},
			"commonMistakes":     stringList(),
			"examTips":           stringList(),
			"realWorldExample":   map[string]any{"type": "string"},
		},
		"required":             []any{"definition", "keyPoints", "diagramExplanation", "commonMistakes", "examTips", "realWorldExample"},
		"additionalProperties": false,
	},
}

func stringList() map[string]any {
	return map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": 1,
	}
}
