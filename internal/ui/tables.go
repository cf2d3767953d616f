package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

const (
	runningMarker = "(running)"
	emptyNote     = "—"
	noteWidth     = 30
)

func (m uiModel) stampWidth() int {
	return len(timefmt.FormatTimestamp(m.now, m.config.Format.TimestampLayout))
}

func (m uiModel) todayColumns() []table.Column {
	w := m.stampWidth()
	return []table.Column{
		{Title: "Start", Width: w},
		{Title: "End", Width: w},
		{Title: "Duration", Width: 10},
		{Title: "Note", Width: noteWidth},
	}
}

func (m uiModel) allColumns() []table.Column {
	w := m.stampWidth()
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Date", Width: 10},
		{Title: "Start", Width: w},
		{Title: "End", Width: w},
		{Title: "Duration", Width: 10},
		{Title: "Note", Width: noteWidth},
	}
}

func (m uiModel) endCell(s model.Session) string {
	if s.End == nil {
		return runningMarker
	}
	return timefmt.FormatTimestamp(*s.End, m.config.Format.TimestampLayout)
}

func noteCell(s model.Session) string {
	if s.Note == "" {
		return emptyNote
	}
	return s.Note
}

// todayRows lists today's sessions in insertion order
func (m uiModel) todayRows(sum tracker.Summary) []table.Row {
	rows := make([]table.Row, 0, len(sum.Today))
	for _, s := range sum.Today {
		rows = append(rows, table.Row{
			timefmt.FormatTimestamp(s.Start, m.config.Format.TimestampLayout),
			m.endCell(s),
			timefmt.FormatDuration(s.Duration(m.now)),
			noteCell(s),
		})
	}
	return rows
}

// allRows lists every session ordered by start, numbered by insertion order
func (m uiModel) allRows(sum tracker.Summary) []table.Row {
	sorted := tracker.ByStart(sum.All)
	rows := make([]table.Row, 0, len(sorted))
	for _, s := range sorted {
		rows = append(rows, table.Row{
			strconv.Itoa(s.Index),
			timefmt.DayKey(s.Start),
			timefmt.FormatTimestamp(s.Start, m.config.Format.TimestampLayout),
			m.endCell(s.Session),
			timefmt.FormatDuration(s.Duration(m.now)),
			noteCell(s.Session),
		})
	}
	return rows
}

// refreshTables recomputes both tables from the store at m.now
func (m *uiModel) refreshTables() {
	sum := m.summary()
	m.todayTable.SetRows(m.todayRows(sum))
	m.allTable.SetRows(m.allRows(sum))
}

func (m uiModel) summary() tracker.Summary {
	return m.tracker.Summary(m.user, m.now)
}

// resizeTables splits the space left under the header between both tables
func (m *uiModel) resizeTables() {
	avail := m.height - 20
	if avail < 6 {
		avail = 6
	}
	m.todayTable.SetHeight(avail / 2)
	m.allTable.SetHeight(avail - avail/2)
}

func (m *uiModel) setTableFocus(all bool) {
	m.focusAll = all
	if all {
		m.allTable.Focus()
		m.allTable.SetStyles(m.styles.table)
		m.todayTable.Blur()
		m.todayTable.SetStyles(m.styles.tableBlurred)
	} else {
		m.todayTable.Focus()
		m.todayTable.SetStyles(m.styles.table)
		m.allTable.Blur()
		m.allTable.SetStyles(m.styles.tableBlurred)
	}
}
