package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
)

var inNote string

// sessionOutput is the --json shape of a single session.
type sessionOutput struct {
	User     string `json:"user" yaml:"user"`
	Start    string `json:"start" yaml:"start"`
	End      string `json:"end,omitempty" yaml:"end,omitempty"`
	Duration string `json:"duration" yaml:"duration"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

func newSessionOutput(a *app, user string, s model.Session) sessionOutput {
	layout := a.cfg.Format.TimestampLayout
	out := sessionOutput{
		User:     user,
		Start:    timefmt.FormatTimestamp(s.Start, layout),
		Duration: timefmt.FormatDuration(s.Duration(a.tracker.Now())),
		Note:     s.Note,
	}
	if s.End != nil {
		out.End = timefmt.FormatTimestamp(*s.End, layout)
	}
	return out
}

func newInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "in <user>",
		Short: "Start a session for user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.tracker.ClockIn(cmd.Context(), args[0], inNote)
			if err != nil {
				return err
			}
			out := newSessionOutput(a, args[0], s)
			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked in %s at %s\n", out.User, out.Start)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inNote, "note", "n", "", "note attached to the session")
	return cmd
}

func newOutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "out <user>",
		Short: "End the open session of user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			s, err := a.tracker.ClockOut(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := newSessionOutput(a, args[0], s)
			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Clocked out %s at %s (%s)\n", out.User, out.End, out.Duration)
			return nil
		},
	}
}
