package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
)

var (
	jsonOutput bool
	configPath string
	logLevel   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timeclock",
		Short: "Clock in and out of work sessions",
		Long: `timeclock records work sessions per user. Clock in to start a session,
clock out to end it, and review today's and all-time totals in the
terminal UI or from the command line. Sessions can be exported as a CSV
timesheet or an org-mode LOGBOOK.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&jsonOutput, "json", false, "output in JSON format")
	pf.StringVar(&configPath, "config", "", "path to config file (default is the user config dir)")
	pf.StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	root.AddCommand(
		newTUICmd(),
		newInCmd(),
		newOutCmd(),
		newStatusCmd(),
		newReportCmd(),
		newExportCmd(),
		newImportCmd(),
		newClearCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmtErr(os.Stderr, "%s", errclass.UserMessage(err))
		stop()
		os.Exit(1)
	}
}

// outputJSON prints v as indented JSON to w.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fmtErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "timeclock: "+format+"\n", args...)
}
