package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/ui/theme"
)

var answerCmd = &cobra.Command{
	Use:   "answer <concept-id> <correct|incorrect>",
	Short: "Record the outcome of a question answered elsewhere",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, err := parseOutcome(args[1])
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c, ok := e.catalog.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown concept %q", args[0])
		}

		ctx := cmd.Context()
		wasLearned := e.progress.Read(ctx, c.ID).IsLearned()
		p := e.progress.RecordAnswer(ctx, c.ID, correct)

		fmt.Printf("%s: %d/%d correct, %d%% confidence\n", c.Name, p.Correct, p.Attempts, p.Confidence)
		if p.IsLearned() && !wasLearned {
			fmt.Println(theme.Correct.Render("Concept learned!"))
		}
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently answered questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		entries := e.progress.History(cmd.Context())
		if len(entries) == 0 {
			fmt.Println("No questions answered yet.")
			return nil
		}

		for _, h := range entries {
			mark := theme.Correct.Render("✓")
			if !h.IsCorrect {
				mark = theme.Incorrect.Render("✗")
			}
			fmt.Printf("%s %s  %s\n", mark, h.Timestamp.Local().Format("2006-01-02 15:04"), h.ConceptName)
			fmt.Printf("    %s\n", truncate(h.Question, 90))
			fmt.Printf("    answered %s, correct %s\n", h.StudentAnswer, h.CorrectAnswer)
		}
		return nil
	},
}

// parseOutcome accepts the usual spellings of a right or wrong answer.
func parseOutcome(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "correct", "right", "yes", "y", "true", "1":
		return true, nil
	case "incorrect", "wrong", "no", "n", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid outcome %q (want correct or incorrect)", s)
}
