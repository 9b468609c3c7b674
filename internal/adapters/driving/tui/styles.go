package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the chat view.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
	}
}

// Styles contains pre-configured lipgloss styles for the chat view.
type Styles struct {
	theme *Theme

	// Title style for the header.
	Title lipgloss.Style

	// Question style for the user's questions.
	Question lipgloss.Style

	// Answer style for model answers.
	Answer lipgloss.Style

	// Snippet style for retrieved lease excerpts.
	Snippet lipgloss.Style

	// Muted style for hints and the status line.
	Muted lipgloss.Style

	// Error style for failures.
	Error lipgloss.Style
}

// DefaultStyles returns styles built from the default theme.
func DefaultStyles() *Styles {
	t := DefaultTheme()
	return &Styles{
		theme:    t,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Question: lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Answer:   lipgloss.NewStyle().Foreground(t.Foreground),
		Snippet:  lipgloss.NewStyle().Foreground(t.Muted).PaddingLeft(2),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
	}
}
