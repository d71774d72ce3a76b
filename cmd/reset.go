package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress and history",
	RunE: func(cmd *cobra.Command, args []string) error {
		historyOnly, _ := cmd.Flags().GetBool("history")
		yes, _ := cmd.Flags().GetBool("yes")

		what := "all progress and history"
		if historyOnly {
			what = "the question history"
		}
		if !yes && !confirm(fmt.Sprintf("Delete %s?", what)) {
			fmt.Println("Aborted.")
			return nil
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if historyOnly {
			e.progress.ClearHistory(cmd.Context())
		} else {
			e.progress.Reset(cmd.Context())
		}
		fmt.Printf("Deleted %s.\n", what)
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	ans := strings.ToLower(strings.TrimSpace(line))
	return ans == "y" || ans == "yes"
}

func init() {
	resetCmd.Flags().Bool("history", false, "Only clear the question history")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
