package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

type viewMode int

const (
	modeMain viewMode = iota
	modeSwitchUser
	modeEditNote
	modeConfirmClearUser
	modeConfirmClearAll
)

// tickMsg refreshes the current instant used for running durations
type tickMsg time.Time

type uiModel struct {
	ctx          context.Context
	tracker      *tracker.Tracker
	config       *config.Config
	user         string
	note         string
	now          time.Time
	mode         viewMode
	focusAll     bool
	help         help.Model
	keys         keyMap
	styles       styleMap
	width        int
	height       int
	statusMsg    string
	statusExpiry time.Time
	textinput    textinput.Model
	todayTable   table.Model
	allTable     table.Model
}

func initialModel(ctx context.Context, tr *tracker.Tracker, cfg *config.Config, user string) uiModel {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.ShowSuggestions = true

	h := help.New()
	h.ShowAll = false

	styles := newStyleMapFromConfig(cfg)
	m := uiModel{
		ctx:       ctx,
		tracker:   tr,
		config:    cfg,
		user:      user,
		now:       tr.Now(),
		mode:      modeMain,
		help:      h,
		keys:      newKeyMapFromConfig(cfg),
		styles:    styles,
		textinput: ti,
	}
	m.todayTable = table.New(
		table.WithColumns(m.todayColumns()),
		table.WithFocused(true),
		table.WithHeight(6),
		table.WithStyles(styles.table),
	)
	m.allTable = table.New(
		table.WithColumns(m.allColumns()),
		table.WithHeight(8),
		table.WithStyles(styles.tableBlurred),
	)
	m.refreshTables()
	return m
}

func (m uiModel) Init() tea.Cmd {
	return m.tick()
}

func (m uiModel) tick() tea.Cmd {
	interval := time.Duration(m.config.UI.TickSeconds) * time.Second
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *uiModel) setStatus(msg string) {
	m.statusMsg = msg
	m.statusExpiry = m.now.Add(time.Duration(m.config.UI.StatusSeconds) * time.Second)
}

// RunUI starts the terminal UI with user preselected (may be empty)
func RunUI(ctx context.Context, tr *tracker.Tracker, cfg *config.Config, user string) error {
	p := tea.NewProgram(initialModel(ctx, tr, cfg, user), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
