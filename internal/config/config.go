package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/bubbles/key"
)

const (
	appDirName = "timeclock"

	BackendFile   = "file"
	BackendSQLite = "sqlite"

	// DefaultStorageKey namespaces the persisted store inside the backend.
	DefaultStorageKey = "timeclock.sessions.v1"
)

// Config represents the application configuration
type Config struct {
	Storage     StorageConfig     `toml:"storage"`
	Export      ExportConfig      `toml:"export"`
	Format      FormatConfig      `toml:"format"`
	UI          UIConfig          `toml:"ui"`
	Log         LogConfig         `toml:"log"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Colors      ColorsConfig      `toml:"colors"`
}

// StorageConfig selects where sessions are persisted
type StorageConfig struct {
	Backend string `toml:"backend"` // file or sqlite
	Path    string `toml:"path"`
	Key     string `toml:"key"`
}

// ExportConfig holds export settings
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// FormatConfig holds display formats
type FormatConfig struct {
	TimestampLayout string `toml:"timestamp_layout"`
}

// UIConfig holds UI-related configurations
type UIConfig struct {
	TickSeconds      int `toml:"tick_seconds"`
	StatusSeconds    int `toml:"status_seconds"`
	MinTerminalWidth int `toml:"min_terminal_width"`
}

// LogConfig configures logging behavior
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Up         []string `toml:"up"`
	Down       []string `toml:"down"`
	ClockIn    []string `toml:"clock_in"`
	ClockOut   []string `toml:"clock_out"`
	SwitchUser []string `toml:"switch_user"`
	EditNote   []string `toml:"edit_note"`
	Export     []string `toml:"export"`
	ClearUser  []string `toml:"clear_user"`
	ClearAll   []string `toml:"clear_all"`
	ToggleView []string `toml:"toggle_view"`
	Help       []string `toml:"help"`
	Quit       []string `toml:"quit"`
}

// ColorsConfig holds color configurations
type ColorsConfig struct {
	Title      string `toml:"title"`
	ClockedIn  string `toml:"clocked_in"`
	ClockedOut string `toml:"clocked_out"`
	Running    string `toml:"running"`
	Status     string `toml:"status"`
	Card       string `toml:"card"`
	Header     string `toml:"header"`
	Danger     string `toml:"danger"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	dir := dataDir()
	return &Config{
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    filepath.Join(dir, "sessions.json"),
			Key:     DefaultStorageKey,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Format: FormatConfig{
			TimestampLayout: "2006-01-02 15:04:05",
		},
		UI: UIConfig{
			TickSeconds:      1,
			StatusSeconds:    3,
			MinTerminalWidth: 60,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "timeclock.log"),
		},
		Keybindings: KeybindingsConfig{
			Up:         []string{"up", "k"},
			Down:       []string{"down", "j"},
			ClockIn:    []string{"i"},
			ClockOut:   []string{"o"},
			SwitchUser: []string{"u"},
			EditNote:   []string{"n"},
			Export:     []string{"e"},
			ClearUser:  []string{"x"},
			ClearAll:   []string{"X"},
			ToggleView: []string{"tab"},
			Help:       []string{"?"},
			Quit:       []string{"q", "ctrl+c"},
		},
		Colors: ColorsConfig{
			Title:      "99",
			ClockedIn:  "34",
			ClockedOut: "214",
			Running:    "34",
			Status:     "241",
			Card:       "63",
			Header:     "246",
			Danger:     "196",
		},
	}
}

// dataDir is where the config, the session store and the log live by default
func dataDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(configDir, appDirName)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, appDirName, "config.toml"), nil
}

// LoadConfig loads the configuration from path, or from GetConfigPath when path is empty
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		defaultCfg := DefaultConfig()
		// A read-only config dir is not fatal, the defaults still apply
		_ = defaultCfg.Save(path)
		return defaultCfg, nil
	}

	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Merge with defaults for any missing values
	config.fillDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Save saves the configuration to path
func (c *Config) Save(path string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings no component can run with
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendFile, BackendSQLite)
	}
	if c.UI.TickSeconds < 0 {
		return fmt.Errorf("ui.tick_seconds must be positive, got %d", c.UI.TickSeconds)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// fillDefaults fills in any missing config values with defaults
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()

	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.Storage.Path == "" {
		if c.Storage.Backend == BackendSQLite {
			c.Storage.Path = filepath.Join(dataDir(), "sessions.db")
		} else {
			c.Storage.Path = defaults.Storage.Path
		}
	}
	if c.Storage.Key == "" {
		c.Storage.Key = defaults.Storage.Key
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
	if c.Format.TimestampLayout == "" {
		c.Format.TimestampLayout = defaults.Format.TimestampLayout
	}

	// Fill UI if zero values
	if c.UI.TickSeconds == 0 {
		c.UI.TickSeconds = defaults.UI.TickSeconds
	}
	if c.UI.StatusSeconds == 0 {
		c.UI.StatusSeconds = defaults.UI.StatusSeconds
	}
	if c.UI.MinTerminalWidth == 0 {
		c.UI.MinTerminalWidth = defaults.UI.MinTerminalWidth
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	// Fill keybindings if empty
	kb, dkb := &c.Keybindings, defaults.Keybindings
	fillKeys(&kb.Up, dkb.Up)
	fillKeys(&kb.Down, dkb.Down)
	fillKeys(&kb.ClockIn, dkb.ClockIn)
	fillKeys(&kb.ClockOut, dkb.ClockOut)
	fillKeys(&kb.SwitchUser, dkb.SwitchUser)
	fillKeys(&kb.EditNote, dkb.EditNote)
	fillKeys(&kb.Export, dkb.Export)
	fillKeys(&kb.ClearUser, dkb.ClearUser)
	fillKeys(&kb.ClearAll, dkb.ClearAll)
	fillKeys(&kb.ToggleView, dkb.ToggleView)
	fillKeys(&kb.Help, dkb.Help)
	fillKeys(&kb.Quit, dkb.Quit)

	// Fill colors if empty
	col, dcol := &c.Colors, defaults.Colors
	fillColor(&col.Title, dcol.Title)
	fillColor(&col.ClockedIn, dcol.ClockedIn)
	fillColor(&col.ClockedOut, dcol.ClockedOut)
	fillColor(&col.Running, dcol.Running)
	fillColor(&col.Status, dcol.Status)
	fillColor(&col.Card, dcol.Card)
	fillColor(&col.Header, dcol.Header)
	fillColor(&col.Danger, dcol.Danger)
}

func fillKeys(dst *[]string, def []string) {
	if len(*dst) == 0 {
		*dst = def
	}
}

func fillColor(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

// BuildKeyBinding creates a key.Binding from config
func BuildKeyBinding(keys []string, help string, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, description),
	)
}
