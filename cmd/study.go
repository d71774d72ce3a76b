package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest what to study next",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		eng := e.engine(cmd.Context())
		next, ok := eng.RecommendedConcept()
		if !ok {
			fmt.Println("Everything available is learned. Nice work!")
		} else {
			fmt.Println(theme.Title.Render("Next up"))
			printConceptLine(next)
		}

		if weak, ok := eng.FindWeakestConcept(); ok {
			fmt.Println()
			fmt.Println(theme.Title.Render("Needs practice"))
			printConceptLine(weak)
			p := eng.Progress(weak.ID)
			if p.Attempts > 0 {
				fmt.Printf("  %d attempts, %d%% confidence\n", p.Attempts, p.Confidence)
			}
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <days-until-exam>",
	Short: "Plan remaining concepts over the days before an exam",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		days, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid day count %q", args[0])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		plan := e.engine(cmd.Context()).StudyPath(days)
		if plan.TotalRemaining == 0 {
			fmt.Println("Nothing left to plan: every available concept is learned.")
			return nil
		}

		fmt.Printf("%d concepts remaining, %d per day, %d days needed\n",
			plan.TotalRemaining, plan.ConceptsPerDay, plan.DaysNeeded)

		if len(plan.UrgentConcepts) > 0 {
			fmt.Println()
			fmt.Println(theme.Incorrect.Render("Urgent"))
			for _, c := range plan.UrgentConcepts {
				printConceptLine(c)
			}
		}

		for i, day := range plan.DailyTargets {
			fmt.Println()
			fmt.Println(theme.Heading.Render(fmt.Sprintf("Day %d", i+1)))
			for _, c := range day {
				printConceptLine(c)
			}
		}
		return nil
	},
}

func printConceptLine(c catalog.Concept) {
	fmt.Printf("  %s %s\n", c.Name, theme.Hint.Render(fmt.Sprintf("(%s, difficulty %d)", c.ID, c.Difficulty)))
}
