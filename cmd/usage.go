package cmd

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/store"
	"github.com/abhisek/econiz/internal/ui/theme"
)

// activity is an LLM call purpose as the learner meets it.
type activity struct {
	purpose string
	label   string
	aliases []string
}

var activities = []activity{
	{llm.PurposeQuestion, "Practice questions", []string{"question", "questions"}},
	{llm.PurposeExplanation, "Mistake explanations", []string{"explain", "explanations"}},
	{llm.PurposeReview, "Concept reviews", []string{"reviews"}},
}

func activityLabel(purpose string) string {
	for _, a := range activities {
		if a.purpose == purpose {
			return a.label
		}
	}
	if purpose == "" || purpose == "unknown" {
		return "Other"
	}
	return purpose
}

// parsePurpose resolves a --purpose value given as a stored purpose or one
// of its aliases. Empty means all purposes.
func parsePurpose(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, a := range activities {
		if s == a.purpose || slices.Contains(a.aliases, s) {
			return a.purpose, nil
		}
	}
	return "", fmt.Errorf("unknown purpose %q (want questions, explanations or reviews)", s)
}

// parseSince turns "7d" or a Go duration such as "36h" into a start time.
// Empty means no lower bound.
func parseSince(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	var d time.Duration
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --since %q: %w", s, err)
		}
		d = time.Duration(n) * 24 * time.Hour
	} else {
		var err error
		if d, err = time.ParseDuration(s); err != nil {
			return time.Time{}, fmt.Errorf("invalid --since %q: %w", s, err)
		}
	}
	if d <= 0 {
		return time.Time{}, fmt.Errorf("invalid --since %q: must be positive", s)
	}
	return now.Add(-d), nil
}

type usageLine struct {
	Label        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Cost         float64
	// Priced is false when any of the line's models has no pricing.
	Priced bool
}

func (l *usageLine) add(r store.UsageRow, cost float64, priced bool) {
	if l.Calls+r.Calls > 0 {
		l.AvgLatencyMs = (l.AvgLatencyMs*int64(l.Calls) + r.AvgLatencyMs*int64(r.Calls)) / int64(l.Calls+r.Calls)
	}
	l.Calls += r.Calls
	l.Failures += r.Failures
	l.InputTokens += r.InputTokens
	l.OutputTokens += r.OutputTokens
	l.Cost += cost
	l.Priced = l.Priced && priced
}

type usageReport struct {
	Activities []usageLine
	Models     []usageLine
	Total      usageLine
	// QuestionsServed counts successful question generations.
	QuestionsServed int
	Unpriced        []string
}

// CostPerQuestion spreads all spend, explanations and reviews included,
// over the questions served.
func (r usageReport) CostPerQuestion() (float64, bool) {
	if r.QuestionsServed == 0 || !r.Total.Priced {
		return 0, false
	}
	return r.Total.Cost / float64(r.QuestionsServed), true
}

// summarizeUsage folds per purpose and model rows into activity and model
// lines. Known activities come first in their fixed order.
func summarizeUsage(rows []store.UsageRow) usageReport {
	rep := usageReport{Total: usageLine{Label: "TOTAL", Priced: true}}
	byActivity := map[string]*usageLine{}
	byModel := map[string]*usageLine{}
	var order, models []string

	for _, r := range rows {
		var cost float64
		mc := llm.LookupCost(r.Model)
		if mc != nil {
			cost = mc.Cost(r.InputTokens, r.OutputTokens)
		} else if !slices.Contains(rep.Unpriced, r.Model) {
			rep.Unpriced = append(rep.Unpriced, r.Model)
		}

		label := activityLabel(r.Purpose)
		a, ok := byActivity[label]
		if !ok {
			a = &usageLine{Label: label, Priced: true}
			byActivity[label] = a
			order = append(order, label)
		}
		a.add(r, cost, mc != nil)

		m, ok := byModel[r.Model]
		if !ok {
			m = &usageLine{Label: r.Model, Priced: true}
			byModel[r.Model] = m
			models = append(models, r.Model)
		}
		m.add(r, cost, mc != nil)

		rep.Total.add(r, cost, mc != nil)
		if r.Purpose == llm.PurposeQuestion {
			rep.QuestionsServed += r.Calls - r.Failures
		}
	}

	rank := func(label string) int {
		for i, a := range activities {
			if a.label == label {
				return i
			}
		}
		return len(activities)
	}
	slices.SortStableFunc(order, func(a, b string) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	slices.Sort(models)

	for _, l := range order {
		rep.Activities = append(rep.Activities, *byActivity[l])
	}
	for _, m := range models {
		rep.Models = append(rep.Models, *byModel[m])
	}
	return rep
}

func renderUsage(w io.Writer, rep usageReport) {
	rule := strings.Repeat("─", 86)
	row := "%-22s  %6s  %6s  %10s  %10s  %8s  %10s\n"
	line := func(l usageLine) {
		cost := formatCost(l.Cost)
		if !l.Priced {
			cost += "?"
		}
		fmt.Fprintf(w, row, truncate(l.Label, 22), strconv.Itoa(l.Calls), strconv.Itoa(l.Failures),
			strconv.Itoa(l.InputTokens), strconv.Itoa(l.OutputTokens), strconv.FormatInt(l.AvgLatencyMs, 10), cost)
	}

	for _, section := range []struct {
		title, first string
		lines        []usageLine
	}{
		{"Usage by activity", "Activity", rep.Activities},
		{"Usage by model", "Model", rep.Models},
	} {
		fmt.Fprintln(w, theme.Heading.Render(section.title))
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, row, section.first, "Calls", "Failed", "Input", "Output", "Avg ms", "Cost")
		fmt.Fprintln(w, rule)
		for _, l := range section.lines {
			line(l)
		}
		fmt.Fprintln(w, rule)
		line(rep.Total)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Questions served: %d\n", rep.QuestionsServed)
	if c, ok := rep.CostPerQuestion(); ok {
		fmt.Fprintf(w, "Cost per question: %s\n", formatCost(c))
	}
	if len(rep.Unpriced) > 0 {
		fmt.Fprintln(w, theme.Hint.Render("Pricing unavailable for: "+strings.Join(rep.Unpriced, ", ")))
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
