package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/mastery"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List concepts with mastery status",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, _ := cmd.Flags().GetString("unit")
		availableOnly, _ := cmd.Flags().GetBool("available")

		if unit != "" && !catalog.Unit(unit).Valid() {
			return fmt.Errorf("unknown unit %q", unit)
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		eng := e.engine(cmd.Context())
		for _, u := range catalog.AllUnits() {
			if unit != "" && catalog.Unit(unit) != u {
				continue
			}
			var rows []catalog.Concept
			for _, c := range e.catalog.ByUnit(u) {
				if availableOnly && !eng.IsAvailable(c) {
					continue
				}
				rows = append(rows, c)
			}
			if len(rows) == 0 {
				continue
			}

			fmt.Println(theme.Heading.Render(catalog.UnitDisplayName(u)))
			fmt.Printf("  %-34s  %-3s  %-15s  %8s  %s\n", "ID", "Lvl", "Status", "Attempts", "Conf")
			fmt.Println("  " + strings.Repeat("─", 74))
			for _, c := range rows {
				p := eng.Progress(c.ID)
				lvl := eng.MasteryLevel(c.ID)
				status := fmt.Sprintf("%-15s", lvl.Label)
				lock := ""
				if !eng.IsAvailable(c) {
					lock = theme.Hint.Render(" locked")
				}
				fmt.Printf("  %-34s  %-3d  %s  %8d  %3d%%%s\n",
					truncate(c.ID, 34), c.Difficulty, theme.StatusStyle(lvl.Level).Render(status),
					p.Attempts, p.Confidence, lock)
			}
			fmt.Println()
		}
		return nil
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain <concept-id>",
	Short: "Show the prerequisite chain for a concept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c, ok := e.catalog.Get(args[0])
		if !ok {
			return fmt.Errorf("unknown concept %q", args[0])
		}

		eng := e.engine(cmd.Context())
		chain := eng.PrerequisiteChain(c)
		fmt.Println(theme.Title.Render(c.Name))
		if len(chain) == 0 {
			fmt.Println(theme.Hint.Render("No prerequisites."))
			return nil
		}
		for i, p := range chain {
			fmt.Printf("%2d. %s %s\n", i+1, learnedMark(eng, p.ID), p.Name)
		}

		if st := eng.PrerequisitesMet(c); !st.Met {
			names := make([]string, 0, len(st.Missing))
			for _, m := range st.Missing {
				names = append(names, m.Name)
			}
			fmt.Printf("\nLocked until learned: %s\n", strings.Join(names, ", "))
		}
		return nil
	},
}

func learnedMark(eng *mastery.Engine, id string) string {
	if eng.IsLearned(id) {
		return theme.Correct.Render("✓")
	}
	return theme.Incorrect.Render("✗")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	conceptsCmd.Flags().StringP("unit", "u", "", "Filter by unit (microeconomics, macroeconomics, international_economics)")
	conceptsCmd.Flags().BoolP("available", "a", false, "Only show concepts whose prerequisites are learned")
}
