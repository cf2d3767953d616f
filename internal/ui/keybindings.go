package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
)

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	ClockIn    key.Binding
	ClockOut   key.Binding
	SwitchUser key.Binding
	EditNote   key.Binding
	Export     key.Binding
	ClearUser  key.Binding
	ClearAll   key.Binding
	ToggleView key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// newKeyMapFromConfig creates a keyMap from configuration
func newKeyMapFromConfig(cfg *config.Config) keyMap {
	kb := cfg.Keybindings

	return keyMap{
		Up:         config.BuildKeyBinding(kb.Up, formatKeyHelp(kb.Up), "scroll up"),
		Down:       config.BuildKeyBinding(kb.Down, formatKeyHelp(kb.Down), "scroll down"),
		ClockIn:    config.BuildKeyBinding(kb.ClockIn, formatKeyHelp(kb.ClockIn), "clock in"),
		ClockOut:   config.BuildKeyBinding(kb.ClockOut, formatKeyHelp(kb.ClockOut), "clock out"),
		SwitchUser: config.BuildKeyBinding(kb.SwitchUser, formatKeyHelp(kb.SwitchUser), "select user"),
		EditNote:   config.BuildKeyBinding(kb.EditNote, formatKeyHelp(kb.EditNote), "session note"),
		Export:     config.BuildKeyBinding(kb.Export, formatKeyHelp(kb.Export), "export csv"),
		ClearUser:  config.BuildKeyBinding(kb.ClearUser, formatKeyHelp(kb.ClearUser), "clear user"),
		ClearAll:   config.BuildKeyBinding(kb.ClearAll, formatKeyHelp(kb.ClearAll), "clear all data"),
		ToggleView: config.BuildKeyBinding(kb.ToggleView, formatKeyHelp(kb.ToggleView), "switch table"),
		Help:       config.BuildKeyBinding(kb.Help, formatKeyHelp(kb.Help), "toggle help"),
		Quit:       config.BuildKeyBinding(kb.Quit, formatKeyHelp(kb.Quit), "quit"),
	}
}

// formatKeyHelp formats a slice of keys for display in help
func formatKeyHelp(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	// Take first two keys for display
	if len(keys) == 1 {
		return formatKey(keys[0])
	}
	return formatKey(keys[0]) + "/" + formatKey(keys[1])
}

// formatKey formats a single key for display
func formatKey(k string) string {
	k = strings.ReplaceAll(k, "up", "↑")
	k = strings.ReplaceAll(k, "down", "↓")
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ClockIn, k.ClockOut, k.SwitchUser, k.EditNote, k.Export, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ClockIn, k.ClockOut, k.SwitchUser},
		{k.EditNote, k.Export, k.ToggleView},
		{k.Up, k.Down},
		{k.ClearUser, k.ClearAll, k.Help, k.Quit},
	}
}

// getAllBindings returns all keybindings as a flat list
func (k keyMap) getAllBindings() []key.Binding {
	return []key.Binding{
		k.ClockIn, k.ClockOut, k.SwitchUser, k.EditNote, k.Export,
		k.ToggleView, k.Up, k.Down, k.ClearUser, k.ClearAll, k.Help, k.Quit,
	}
}
