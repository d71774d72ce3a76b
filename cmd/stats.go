package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/mastery"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		eng := e.engine(cmd.Context())
		s := eng.OverallStats()
		v := eng.LearningVelocity()
		b := eng.ConceptsByStatus()

		fmt.Println(theme.Title.Render("Progress"))
		fmt.Printf("%s %d%%  (%d of %d concepts learned)\n",
			theme.ProgressBar(s.ProgressPercent, 30), s.ProgressPercent, s.ConceptsMastered, s.TotalConcepts)
		fmt.Printf("Attempts:  %d  (%d correct, %d%% accuracy)\n", s.TotalAttempts, s.TotalCorrect, s.OverallAccuracy)
		fmt.Printf("Started:   %d concepts\n", s.ConceptsAttempted)
		fmt.Println()

		fmt.Println(theme.Title.Render("Velocity"))
		if v.MasteredCount == 0 {
			fmt.Println(theme.Hint.Render("No concepts learned yet."))
		} else {
			fmt.Printf("%.2f concepts/day over %d days  (%.2f per active day, %d active)\n",
				v.Velocity, v.ElapsedDays, v.ConceptsPerDay, v.DaysActive)
		}
		fmt.Println()

		fmt.Println(theme.Title.Render("By Status"))
		printBucket(mastery.StatusMastered, b.Mastered)
		printBucket(mastery.StatusLearning, b.Learning)
		printBucket(mastery.StatusStruggling, b.Struggling)
		printBucket(mastery.StatusNotAttempted, b.NotStarted)
		return nil
	},
}

func printBucket(s mastery.Status, concepts []catalog.Concept) {
	label := fmt.Sprintf("%-15s %3d", mastery.LevelFor(s).Label, len(concepts))
	fmt.Println(theme.StatusStyle(s).Render(label))
}
