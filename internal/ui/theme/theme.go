// Package theme holds the terminal styles used by the econiz CLI.
package theme

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/econiz/internal/mastery"
)

// Color palette. Status colors match the mastery level descriptors.
var (
	Primary  = lipgloss.Color("#8B5CF6") // Vivid Purple
	Accent   = lipgloss.Color("#F97316") // Orange
	TextDim  = lipgloss.Color("#94A3B8") // Slate
	Border   = lipgloss.Color("#334155") // Slate
	Mastered = lipgloss.Color(mastery.LevelFor(mastery.StatusMastered).Color)
	Learning = lipgloss.Color(mastery.LevelFor(mastery.StatusLearning).Color)
	Weak     = lipgloss.Color(mastery.LevelFor(mastery.StatusStruggling).Color)
	Untried  = lipgloss.Color(mastery.LevelFor(mastery.StatusNotAttempted).Color)
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Mastered).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Weak).
			Bold(true)
)

// Progress bar
var (
	ProgressFilled = lipgloss.NewStyle().Foreground(Mastered)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)
)

// StatusStyle returns the style for a mastery status.
func StatusStyle(s mastery.Status) lipgloss.Style {
	switch s {
	case mastery.StatusMastered:
		return lipgloss.NewStyle().Foreground(Mastered)
	case mastery.StatusLearning:
		return lipgloss.NewStyle().Foreground(Learning)
	case mastery.StatusStruggling:
		return lipgloss.NewStyle().Foreground(Weak)
	default:
		return lipgloss.NewStyle().Foreground(Untried)
	}
}

// ProgressBar renders percent (0-100) as a bar of the given width.
func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	return ProgressFilled.Render(strings.Repeat("█", filled)) +
		ProgressEmpty.Render(strings.Repeat("░", width-filled))
}
