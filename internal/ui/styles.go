package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
)

// styleMap holds all the styles used in the UI
type styleMap struct {
	titleStyle      lipgloss.Style
	clockedInStyle  lipgloss.Style
	clockedOutStyle lipgloss.Style
	runningStyle    lipgloss.Style
	statusStyle     lipgloss.Style
	labelStyle      lipgloss.Style
	cardStyle       lipgloss.Style
	cardValueStyle  lipgloss.Style
	dangerStyle     lipgloss.Style
	table           table.Styles
	tableBlurred    table.Styles
}

// newStyleMapFromConfig creates a styleMap from configuration
func newStyleMapFromConfig(cfg *config.Config) styleMap {
	colors := cfg.Colors

	focused := table.DefaultStyles()
	focused.Header = focused.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color(colors.Header))
	focused.Selected = focused.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color(colors.Card))

	blurred := focused
	blurred.Selected = lipgloss.NewStyle()

	return styleMap{
		titleStyle:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Title)),
		clockedInStyle:  lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colors.ClockedIn)).Foreground(lipgloss.Color(colors.ClockedIn)),
		clockedOutStyle: lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colors.ClockedOut)).Foreground(lipgloss.Color(colors.ClockedOut)),
		runningStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Running)),
		statusStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Status)).Italic(true),
		labelStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Header)),
		cardStyle:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colors.Card)).Padding(0, 2).Width(24),
		cardValueStyle:  lipgloss.NewStyle().Bold(true),
		dangerStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Danger)).Bold(true),
		table:           focused,
		tableBlurred:    blurred,
	}
}
