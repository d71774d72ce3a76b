package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/explain"
	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/questiongen"
	"github.com/abhisek/econiz/internal/review"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [concept-id]",
	Short: "Answer AI-generated questions in the terminal",
	Long: "Practice a concept with generated multiple choice questions. Without a\n" +
		"concept ID the recommended concept is used. Wrong answers get a\n" +
		"personalized explanation.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		withReview, _ := cmd.Flags().GetBool("review")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := newProvider(cmd, e)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		ctx := cmd.Context()
		c, err := pickConcept(ctx, e, args)
		if err != nil {
			return err
		}

		s := &practiceSession{
			env:       e,
			concept:   c,
			questions: questiongen.New(provider, questiongen.DefaultConfig()),
			explainer: explain.NewService(provider, explain.DefaultConfig()),
			in:        bufio.NewReader(os.Stdin),
			out:       os.Stdout,
		}

		fmt.Println(theme.Title.Render("Practising: " + c.Name))
		if withReview {
			if err := s.review(ctx, review.NewService(provider, review.DefaultConfig())); err != nil {
				return err
			}
		}
		for i := 0; i < max(count, 1); i++ {
			if err := s.round(ctx); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	practiceCmd.Flags().IntP("count", "n", 1, "Number of questions")
	practiceCmd.Flags().Bool("review", false, "Show a concept review before the questions")
}

// pickConcept resolves the optional argument, defaulting to the
// recommended concept.
func pickConcept(ctx context.Context, e *env, args []string) (catalog.Concept, error) {
	if len(args) == 1 {
		c, ok := e.catalog.Get(args[0])
		if !ok {
			return catalog.Concept{}, fmt.Errorf("unknown concept %q", args[0])
		}
		return c, nil
	}
	c, ok := e.engine(ctx).RecommendedConcept()
	if !ok {
		return catalog.Concept{}, fmt.Errorf("no concept to practise: everything available is learned")
	}
	return c, nil
}

type practiceSession struct {
	env       *env
	concept   catalog.Concept
	questions questiongen.Generator
	explainer explain.Explainer
	in        *bufio.Reader
	out       io.Writer
}

func (s *practiceSession) round(ctx context.Context) error {
	eng := s.env.engine(ctx)
	var perf *progress.ConceptProgress
	if p := eng.Progress(s.concept.ID); p.Started() {
		perf = &p
	}

	q, err := s.questions.Generate(ctx, questiongen.GenerateInput{
		Concept:         s.concept,
		Performance:     perf,
		LearnedConcepts: eng.LearnedConceptNames(),
	})
	if err != nil {
		return describeLLMError("generate question", err)
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, theme.Card.Render(q.Question))
	for _, k := range questiongen.OptionKeys {
		fmt.Fprintf(s.out, "  %s) %s\n", k, q.Options[k])
	}

	start := time.Now()
	answer, err := s.readAnswer()
	if err != nil {
		return err
	}
	elapsed := time.Since(start).Seconds()

	correct := answer == q.Correct
	prev := s.env.progress.Read(ctx, s.concept.ID)
	p := s.env.progress.RecordAnswer(ctx, s.concept.ID, correct)
	entry := s.env.progress.AddHistory(ctx, progress.NewHistoryEntry{
		ConceptID:     s.concept.ID,
		ConceptName:   s.concept.Name,
		Question:      q.Question,
		Options:       q.Options,
		StudentAnswer: answer,
		CorrectAnswer: q.Correct,
		TimeTaken:     &elapsed,
		Explanation:   &q.Explanation,
	})

	if correct {
		fmt.Fprintln(s.out, theme.Correct.Render("Correct!"))
	} else {
		fmt.Fprintln(s.out, theme.Incorrect.Render("Not quite. The answer is "+q.Correct+"."))
	}
	fmt.Fprintln(s.out, q.Explanation)

	if !correct {
		s.explain(ctx, q, answer, entry.ID)
	}

	fmt.Fprintln(s.out, theme.Hint.Render(fmt.Sprintf("%d/%d correct, %d%% confidence", p.Correct, p.Attempts, p.Confidence)))
	if p.IsLearned() && !prev.IsLearned() {
		fmt.Fprintln(s.out, theme.Correct.Render("Concept learned!"))
	}
	return nil
}

// explain prints a personalized explanation. Failures are reported but do
// not end the session.
func (s *practiceSession) explain(ctx context.Context, q *questiongen.Question, answer, historyID string) {
	out, err := s.explainer.Explain(ctx, explain.Input{
		Concept:       s.concept,
		Question:      q.Question,
		StudentAnswer: answer,
		CorrectAnswer: q.Correct,
		Options:       q.Options,
	})
	if err != nil {
		fmt.Fprintln(s.out, theme.Hint.Render(describeLLMError("explain answer", err).Error()))
		return
	}
	s.env.progress.AttachExplanation(ctx, historyID, out)

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, theme.Heading.Render("What went wrong"))
	fmt.Fprintln(s.out, out.Misconception)
	fmt.Fprintln(s.out, out.CorrectExplanation)
	fmt.Fprintln(s.out, theme.Heading.Render("Key insight"))
	fmt.Fprintln(s.out, out.KeyInsight)
	fmt.Fprintln(s.out, theme.Hint.Render(out.PracticeAdvice))
}

func (s *practiceSession) review(ctx context.Context, r review.Reviewer) error {
	var perf *progress.ConceptProgress
	if p := s.env.progress.Read(ctx, s.concept.ID); p.Started() {
		perf = &p
	}
	out, err := r.Review(ctx, review.Input{Concept: s.concept, Performance: perf})
	if err != nil {
		return describeLLMError("generate review", err)
	}

	fmt.Fprintln(s.out, out.Definition)
	fmt.Fprintln(s.out, theme.Heading.Render("Key points"))
	for _, kp := range out.KeyPoints {
		fmt.Fprintf(s.out, "  • %s\n", kp)
	}
	if out.DiagramExplanation != "" {
		fmt.Fprintln(s.out, theme.Heading.Render("Diagram"))
		fmt.Fprintln(s.out, out.DiagramExplanation)
	}
	fmt.Fprintln(s.out, theme.Heading.Render("Common mistakes"))
	for _, m := range out.CommonMistakes {
		fmt.Fprintf(s.out, "  • %s\n", m)
	}
	fmt.Fprintln(s.out, theme.Heading.Render("Exam tips"))
	for _, t := range out.ExamTips {
		fmt.Fprintf(s.out, "  • %s\n", t)
	}
	fmt.Fprintln(s.out, theme.Hint.Render(out.RealWorldExample))
	return nil
}

// readAnswer prompts until the learner enters one of the option keys.
func (s *practiceSession) readAnswer() (string, error) {
	for {
		fmt.Fprint(s.out, "Your answer (A-D): ")
		line, err := s.in.ReadString('\n')
		ans := strings.ToUpper(strings.TrimSpace(line))
		if slices.Contains(questiongen.OptionKeys, ans) {
			return ans, nil
		}
		if err != nil {
			return "", fmt.Errorf("read answer: %w", err)
		}
	}
}

// describeLLMError turns a provider failure into a message for the
// terminal.
func describeLLMError(action string, err error) error {
	switch llm.Classify(err) {
	case llm.KindRateLimit:
		return fmt.Errorf("%s: rate limit reached, wait a moment and try again", action)
	case llm.KindUnavailable, llm.KindTimeout:
		return fmt.Errorf("%s: unable to reach the AI service: %w", action, err)
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
