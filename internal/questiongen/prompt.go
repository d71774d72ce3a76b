package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/econiz/internal/catalog"
)

const systemPrompt = `You are an IB Economics HL exam question writer. Generate a realistic IB-style multiple choice question for the concept described by the user.

Requirements:
1. Create a scenario-based question typical of IB Economics HL Paper 1
2. Match the question difficulty to the Adapted Difficulty Level:
   - Level 1-2: Focus on definitions, basic concepts, and direct application
   - Level 3: Include analysis and comparison between concepts
   - Level 4-5: Require evaluation, synthesis, and complex scenario analysis
3. Use appropriate IB command terms naturally in the question
4. Include 4 distinct, plausible answer options (A, B, C, D)
5. One option should be clearly correct based on economic theory
6. Distractors should reflect common misconceptions or partial understanding
7. Provide a clear explanation referencing relevant economic theory and diagrams
8. If appropriate, reference real-world scenarios or current economic events

Return ONLY valid JSON with the fields question, options (keys A, B, C, D), correct (one of A, B, C, D), explanation and adaptedDifficulty. No markdown or additional text.`

// buildUserMessage describes the concept, the adapted level and what the
// learner already knows.
func buildUserMessage(input GenerateInput, adapt Adaptation) string {
	c := input.Concept
	var b strings.Builder

	fmt.Fprintf(&b, "Concept: %s\n", c.Name)
	fmt.Fprintf(&b, "Unit: %s\n", catalog.UnitDisplayName(c.Unit))
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	fmt.Fprintf(&b, "Base Difficulty Level: %d/5\n", c.Difficulty)
	fmt.Fprintf(&b, "Adapted Difficulty Level: %d/5\n", adapt.Difficulty)
	fmt.Fprintf(&b, "Relevant IB Command Terms: %s\n", strings.Join(c.CommandTerms, ", "))
	fmt.Fprintf(&b, "Common Misconceptions to Test: %s\n", strings.Join(c.CommonMisconceptions, "; "))
	if len(c.KeyDiagrams) > 0 {
		fmt.Fprintf(&b, "Key Diagrams: %s\n", strings.Join(c.KeyDiagrams, ", "))
	}

	if adapt.Guidance != "" {
		b.WriteString("\n")
		b.WriteString(adapt.Guidance)
		b.WriteString("\n")
	}

	if len(input.LearnedConcepts) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "The student has demonstrated mastery of these related concepts: %s.\n",
			strings.Join(input.LearnedConcepts, ", "))
		b.WriteString("You can reference these concepts in the question as the student understands them.\n")
		b.WriteString("DO NOT require knowledge of concepts NOT in this list.\n")
	}

	fmt.Fprintf(&b, "\nSet adaptedDifficulty to %d.", adapt.Difficulty)
	return b.String()
}
