package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

// dynamicKeyMap is a helper type for rendering keybindings with dynamic layout
type dynamicKeyMap struct {
	rows [][]key.Binding
}

// ShortHelp for dynamicKeyMap
func (d dynamicKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{}
}

// FullHelp for dynamicKeyMap
func (d dynamicKeyMap) FullHelp() [][]key.Binding {
	return d.rows
}

// renderFullHelp renders the help with width-aware layout
func (m uiModel) renderFullHelp() string {
	bindings := m.keys.getAllBindings()

	var columnsPerRow int
	switch {
	case m.width < m.config.UI.MinTerminalWidth:
		columnsPerRow = 1
	case m.width < 80:
		columnsPerRow = 2
	case m.width < 120:
		columnsPerRow = 3
	default:
		columnsPerRow = 4
	}

	var rows [][]key.Binding
	for i := 0; i < len(bindings); i += columnsPerRow {
		end := min(i+columnsPerRow, len(bindings))
		rows = append(rows, bindings[i:end])
	}

	h := help.New()
	h.Width = m.width
	h.ShowAll = true

	return h.View(dynamicKeyMap{rows: rows})
}

func (m *uiModel) focusedTable() *table.Model {
	if m.focusAll {
		return &m.allTable
	}
	return &m.todayTable
}

func (m uiModel) View() string {
	switch m.mode {
	case modeSwitchUser:
		return m.viewInput("Select User", "Tab completes a known user • Enter to confirm • ESC to cancel")
	case modeEditNote:
		return m.viewInput("Session Note", "Used by the next clock in • Enter to save • ESC to cancel")
	case modeConfirmClearUser:
		return m.viewConfirm("⚠ Clear User", fmt.Sprintf("Delete every session of %q?", m.user))
	case modeConfirmClearAll:
		return m.viewConfirm("⚠ Clear All Data", "Delete every session of every user?")
	}

	sum := m.summary()
	var b strings.Builder

	b.WriteString(m.styles.titleStyle.Render("Time Clock"))
	b.WriteString("\n\n")
	b.WriteString(m.renderUserLine(sum))
	b.WriteString("\n")
	b.WriteString(m.styles.labelStyle.Render("Note: "))
	if m.note == "" {
		b.WriteString(m.styles.statusStyle.Render("(none)"))
	} else {
		b.WriteString(m.note)
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCards(sum))
	b.WriteString("\n\n")

	b.WriteString(m.renderSection("Sessions Today", m.todayTable, len(sum.Today) == 0, "No sessions today"))
	b.WriteString("\n")
	b.WriteString(m.renderSection("All Sessions", m.allTable, len(sum.All) == 0, "Select a user to see history"))
	b.WriteString("\n")

	if m.now.Before(m.statusExpiry) {
		b.WriteString(m.styles.statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	if m.help.ShowAll {
		b.WriteString(m.renderFullHelp())
	} else {
		b.WriteString(m.help.View(m.keys))
	}

	return b.String()
}

func (m uiModel) renderUserLine(sum tracker.Summary) string {
	var b strings.Builder
	b.WriteString(m.styles.labelStyle.Render("User: "))
	if m.user == "" {
		b.WriteString(m.styles.statusStyle.Render("(none)"))
	} else {
		b.WriteString(m.styles.cardValueStyle.Render(m.user))
	}
	b.WriteString("  ")

	if sum.State != model.StateClockedIn {
		return lipgloss.JoinHorizontal(lipgloss.Center, b.String(), m.styles.clockedOutStyle.Render(string(sum.State)))
	}
	since := " since " + timefmt.FormatTimestamp(sum.Since, m.config.Format.TimestampLayout)
	return lipgloss.JoinHorizontal(lipgloss.Center, b.String(),
		m.styles.clockedInStyle.Render(string(sum.State)),
		m.styles.runningStyle.Render(since))
}

func (m uiModel) card(label, value, sub string) string {
	content := m.styles.labelStyle.Render(label) + "\n" + m.styles.cardValueStyle.Render(value)
	if sub != "" {
		content += "\n" + m.styles.statusStyle.Render(sub)
	}
	return m.styles.cardStyle.Render(content)
}

func (m uiModel) renderCards(sum tracker.Summary) string {
	exportHint := "press " + formatKeyHelp(m.config.Keybindings.Export)
	cards := []string{
		m.card("Total Today", timefmt.FormatDuration(sum.TotalToday), timefmt.DayKey(m.now)),
		m.card("Total All Time", timefmt.FormatDuration(sum.TotalAll), ""),
		m.card("Export", "CSV", exportHint),
	}
	if m.width > 0 && m.width < m.config.UI.MinTerminalWidth*2 {
		return lipgloss.JoinVertical(lipgloss.Left, cards...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m uiModel) renderSection(title string, t table.Model, empty bool, emptyMsg string) string {
	var b strings.Builder
	b.WriteString(m.styles.titleStyle.Render(title))
	b.WriteString("\n")
	if empty {
		b.WriteString(m.styles.statusStyle.Render(emptyMsg))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(t.View())
	b.WriteString("\n")
	return b.String()
}

func (m uiModel) viewInput(title, hint string) string {
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.config.Colors.Title)).
		Padding(1, 2).
		Width(60)

	var content strings.Builder
	content.WriteString(m.styles.titleStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(m.textinput.View())
	content.WriteString("\n\n")
	content.WriteString(m.styles.statusStyle.Render(hint))

	dialog := dialogStyle.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}

func (m uiModel) viewConfirm(title, question string) string {
	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.config.Colors.Danger)).
		Padding(1, 2).
		Width(60)

	var content strings.Builder
	content.WriteString(m.styles.dangerStyle.Render(title))
	content.WriteString("\n\n")
	content.WriteString(question)
	content.WriteString("\n")
	content.WriteString(m.styles.statusStyle.Render("This cannot be undone."))
	content.WriteString("\n\n")
	content.WriteString("Press Y to confirm • N or ESC to cancel")

	dialog := dialogStyle.Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
