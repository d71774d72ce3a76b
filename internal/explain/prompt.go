package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/econiz/internal/catalog"
)

const systemPrompt = `You are an experienced IB Economics HL teacher providing personalized feedback to a student who answered a question incorrectly. Be empathetic but direct.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("CONCEPT: %s\n", in.Concept.Name))
	b.WriteString(fmt.Sprintf("UNIT: %s\n", catalog.UnitDisplayName(in.Concept.Unit)))
	b.WriteString(fmt.Sprintf("CONCEPT DESCRIPTION: %s\n", in.Concept.Description))
	b.WriteString(fmt.Sprintf("COMMON MISCONCEPTIONS: %s\n", joinOr(in.Concept.CommonMisconceptions, "; ", "None listed")))

	b.WriteString(fmt.Sprintf("\nQUESTION: %s\n", in.Question))
	b.WriteString(fmt.Sprintf("\nSTUDENT'S ANSWER: %s. %s\n", in.StudentAnswer, optionText(in.Options, in.StudentAnswer)))
	b.WriteString(fmt.Sprintf("\nCORRECT ANSWER: %s. %s\n", in.CorrectAnswer, optionText(in.Options, in.CorrectAnswer)))

	b.WriteString(`
Provide a personalized explanation that helps this specific student understand their error:
- likelyReasoning: 2-3 sentences on why the student probably chose their answer. Be specific about what logic or partial understanding led them there.
- misconception: the specific misconception or knowledge gap this error reveals. Reference common IB Economics mistakes if applicable.
- correctExplanation: a clear, step-by-step explanation of the correct reasoning. Use the economic concept name and theory. Reference relevant diagrams if applicable.
- keyInsight: one memorable sentence that captures the core distinction the student needs to remember.
- practiceAdvice: one specific, actionable tip for practicing this concept. Suggest a specific type of question or scenario to work through.`)

	return b.String()
}

// optionText resolves an option key to its text, falling back to the key.
func optionText(options map[string]string, key string) string {
	if t, ok := options[key]; ok && t != "" {
		return t
	}
	return key
}

func joinOr(items []string, sep, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, sep)
}
