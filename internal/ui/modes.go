package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/export"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
)

func (m uiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.now = m.tracker.Now()

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
		m.textinput.Width = min(size.Width-10, 50)
		m.resizeTables()
		return m, nil
	}

	var (
		next tea.Model
		cmd  tea.Cmd
	)
	switch m.mode {
	case modeSwitchUser:
		next, cmd = m.updateSwitchUser(msg)
	case modeEditNote:
		next, cmd = m.updateEditNote(msg)
	case modeConfirmClearUser, modeConfirmClearAll:
		next, cmd = m.updateConfirmClear(msg)
	default:
		next, cmd = m.updateMain(msg)
	}

	nm := next.(uiModel)
	nm.refreshTables()
	return nm, cmd
}

func (m uiModel) updateMain(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil

		case key.Matches(msg, m.keys.ClockIn):
			m.clockIn()
			return m, nil

		case key.Matches(msg, m.keys.ClockOut):
			m.clockOut()
			return m, nil

		case key.Matches(msg, m.keys.SwitchUser):
			m.mode = modeSwitchUser
			m.textinput.SetValue(m.user)
			m.textinput.Placeholder = "Enter user name..."
			m.textinput.SetSuggestions(m.tracker.Users())
			m.textinput.ShowSuggestions = true
			m.textinput.CursorEnd()
			m.textinput.Focus()
			return m, nil

		case key.Matches(msg, m.keys.EditNote):
			m.mode = modeEditNote
			m.textinput.SetValue(m.note)
			m.textinput.Placeholder = "What are you working on?"
			m.textinput.SetSuggestions(nil)
			m.textinput.ShowSuggestions = false
			m.textinput.CursorEnd()
			m.textinput.Focus()
			return m, nil

		case key.Matches(msg, m.keys.Export):
			m.exportCSV()
			return m, nil

		case key.Matches(msg, m.keys.ClearUser):
			if strings.TrimSpace(m.user) == "" {
				m.setStatus(errclass.UserMessage(errclass.ErrNoUser))
				return m, nil
			}
			if len(m.tracker.Sessions(m.user)) == 0 {
				m.setStatus("No sessions for " + m.user)
				return m, nil
			}
			m.mode = modeConfirmClearUser
			return m, nil

		case key.Matches(msg, m.keys.ClearAll):
			m.mode = modeConfirmClearAll
			return m, nil

		case key.Matches(msg, m.keys.ToggleView):
			m.setTableFocus(!m.focusAll)
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.focusedTable().MoveUp(1)
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.focusedTable().MoveDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focusAll {
		m.allTable, cmd = m.allTable.Update(msg)
	} else {
		m.todayTable, cmd = m.todayTable.Update(msg)
	}
	return m, cmd
}

func (m *uiModel) clockIn() {
	s, err := m.tracker.ClockIn(m.ctx, m.user, m.note)
	if err != nil {
		m.setStatus(errclass.UserMessage(err))
		return
	}
	m.note = ""
	m.setStatus(fmt.Sprintf("Clocked in at %s", timefmt.FormatTimestamp(s.Start, m.config.Format.TimestampLayout)))
}

func (m *uiModel) clockOut() {
	s, err := m.tracker.ClockOut(m.ctx, m.user)
	if err != nil {
		m.setStatus(errclass.UserMessage(err))
		return
	}
	m.setStatus(fmt.Sprintf("Clocked out after %s", timefmt.FormatDuration(s.Duration(m.now))))
}

func (m *uiModel) exportCSV() {
	path, err := export.WriteFile(m.config.Export.Dir, m.user, m.tracker.Sessions(m.user), m.now, m.config.Format.TimestampLayout)
	if err != nil {
		m.setStatus(errclass.UserMessage(err))
		return
	}
	m.setStatus("Exported to " + path)
}

func (m uiModel) updateSwitchUser(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.user = strings.TrimSpace(m.textinput.Value())
			m.mode = modeMain
			m.textinput.Blur()
			if m.user == "" {
				m.setStatus("No user selected")
			} else {
				m.setStatus("Switched to " + m.user)
			}
			return m, nil
		case tea.KeyEsc:
			m.mode = modeMain
			m.textinput.Blur()
			m.setStatus("Cancelled")
			return m, nil
		}
	}

	if _, ok := msg.(tickMsg); ok {
		return m, m.tick()
	}

	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

func (m uiModel) updateEditNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.note = strings.TrimSpace(m.textinput.Value())
			m.mode = modeMain
			m.textinput.Blur()
			m.setStatus("Note set")
			return m, nil
		case tea.KeyEsc:
			m.mode = modeMain
			m.textinput.Blur()
			m.setStatus("Cancelled")
			return m, nil
		}
	}

	if _, ok := msg.(tickMsg); ok {
		return m, m.tick()
	}

	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

func (m uiModel) updateConfirmClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			if m.mode == modeConfirmClearAll {
				if err := m.tracker.ClearAll(m.ctx); err != nil {
					m.setStatus(errclass.UserMessage(err))
				} else {
					m.setStatus("All data cleared")
				}
			} else {
				if err := m.tracker.ClearUser(m.ctx, m.user); err != nil {
					m.setStatus(errclass.UserMessage(err))
				} else {
					m.setStatus("Cleared sessions for " + m.user)
				}
			}
			m.mode = modeMain
		case "n", "N", "esc":
			m.mode = modeMain
			m.setStatus("Cancelled")
		}
	}
	return m, nil
}
