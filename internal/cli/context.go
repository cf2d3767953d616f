package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/storage"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

// app bundles what every command needs: the loaded config, the logger and a
// tracker over the configured backend.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	tracker *tracker.Tracker
	backend storage.Backend
	logFile *os.File
}

// openApp loads config, builds the logger and opens the tracker. An unreadable
// or invalid config file falls back to the defaults with a warning. Interactive
// sessions log to the configured file so the alt screen stays clean.
func openApp(cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading config, using defaults: %v\n", err)
		cfg = config.DefaultConfig()
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	a := &app{cfg: cfg}
	var out io.Writer = cmd.ErrOrStderr()
	if interactive {
		f, err := openLogFile(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		a.logFile = f
		out = f
	}
	a.logger = newLogger(out, cfg.Log.Level)

	backend, err := storage.Open(cfg.Storage, a.logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.backend = backend

	tr, err := tracker.New(cmd.Context(), backend, tracker.SystemClock{}, a.logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.tracker = tr
	return a, nil
}

func (a *app) Close() error {
	var err error
	if a.backend != nil {
		err = a.backend.Close()
	}
	if a.logFile != nil {
		if cerr := a.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "timeclock",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
