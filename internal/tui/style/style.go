// Package style defines lipgloss styles for the TUI.
package style

import (
	"github.com/alkime/doba/internal/judge"
	"github.com/charmbracelet/lipgloss"
)

// UI styles using lipgloss.
// These are package-level for convenience; lipgloss styles are value types
// and safe for concurrent use.
//
// Variable names intentionally omit "Style" suffix since they're accessed
// via the style package (e.g., style.Title reads better than style.TitleStyle).
var (
	// Brand is the app name in the header.
	Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("201"))

	// Title is used for stage titles and headers.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Success is used for success messages.
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Error is used for error messages.
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Warning is used for warning messages.
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	// Card frames a block of related content.
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key is used for highlighting keyboard keys.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Progress is used for progress indicators and the waveform.
	Progress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	// Label is used for inline labels (e.g., "Flow", "Overall").
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Muted is used for de-emphasized text.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	// Bullet is used for list item markers.
	Bullet = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205"))

	// Badge is used for highlight chips on the results screen.
	Badge = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	// Score is the big overall number.
	Score = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("226"))
)

var tiers = map[judge.Tier]lipgloss.Style{
	judge.TierTop:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
	judge.TierMid:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	judge.TierBase: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
}

// Tier returns the color for a category score tier.
func Tier(t judge.Tier) lipgloss.Style {
	if s, ok := tiers[t]; ok {
		return s
	}

	return Muted
}
