package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/store"
	"github.com/abhisek/econiz/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect AI calls behind questions, explanations and reviews",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent AI calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		rawPurpose, _ := cmd.Flags().GetString("purpose")
		rawSince, _ := cmd.Flags().GetString("since")

		purpose, err := parsePurpose(rawPurpose)
		if err != nil {
			return err
		}
		since, err := parseSince(rawSince, time.Now())
		if err != nil {
			return err
		}

		s, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{
			Limit:   limit,
			Purpose: purpose,
			From:    since,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		printEvents(os.Stdout, events)
		return nil
	},
}

// printEvents writes one row per event, newest first as given.
func printEvents(w io.Writer, events []store.LLMEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No AI calls recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-16s  %-20s  %-26s  %-11s  %-6s  %s\n",
		"ID", "Time", "Activity", "Model", "Tokens", "Ms", "OK")
	fmt.Fprintln(w, strings.Repeat("─", 98))
	for _, e := range events {
		ok := theme.Correct.Render("✓")
		if !e.Success {
			ok = theme.Incorrect.Render("✗")
		}
		fmt.Fprintf(w, "%-5d  %-16s  %-20s  %-26s  %-11s  %-6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format("2006-01-02 15:04"),
			truncate(activityLabel(e.Purpose), 20),
			truncate(e.Model, 26),
			fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
			e.LatencyMs,
			ok,
		)
	}
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one AI call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("event %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		printEvent(os.Stdout, e)
		return nil
	},
}

func printEvent(w io.Writer, e *store.LLMEvent) {
	fmt.Fprintf(w, "Call #%d (sequence %d)\n", e.ID, e.Sequence)
	fmt.Fprintf(w, "  Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Activity:  %s (%s)\n", activityLabel(e.Purpose), e.Purpose)
	fmt.Fprintf(w, "  Model:     %s via %s\n", e.Model, e.Provider)
	fmt.Fprintf(w, "  Tokens:    %d in / %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "  Latency:   %dms\n", e.LatencyMs)
	if cost := llm.LookupCost(e.Model); cost != nil {
		fmt.Fprintf(w, "  Cost:      %s\n", formatCost(cost.Cost(e.InputTokens, e.OutputTokens)))
	}
	if e.Success {
		fmt.Fprintln(w, "  Result:    "+theme.Correct.Render("ok"))
	} else {
		fmt.Fprintln(w, "  Result:    "+theme.Incorrect.Render("failed: "+e.ErrorMessage))
	}
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost per activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		rawSince, _ := cmd.Flags().GetString("since")
		since, err := parseSince(rawSince, time.Now())
		if err != nil {
			return err
		}

		s, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.EventRepo().LLMUsage(cmd.Context(), since)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No AI usage recorded yet.")
			return nil
		}
		renderUsage(os.Stdout, summarizeUsage(rows))
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only questions, explanations or reviews")
	llmListCmd.Flags().String("since", "", "Only calls within this window, e.g. 7d or 12h")
	llmStatsCmd.Flags().String("since", "", "Only usage within this window, e.g. 7d or 12h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
