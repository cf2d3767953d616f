package cli

import (
	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/ui"
)

var tuiUser string

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive time clock",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}
	cmd.Flags().StringVarP(&tuiUser, "user", "u", "", "preselect a user")
	return cmd
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.Close()

	return ui.RunUI(cmd.Context(), a.tracker, a.cfg, tuiUser)
}
