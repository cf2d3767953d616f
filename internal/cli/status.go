package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

// statusOutput is one row of `timeclock status`.
type statusOutput struct {
	User       string `json:"user" yaml:"user"`
	State      string `json:"state" yaml:"state"`
	Since      string `json:"since,omitempty" yaml:"since,omitempty"`
	TotalToday string `json:"total_today" yaml:"total_today"`
	TotalAll   string `json:"total_all" yaml:"total_all"`
}

func newStatusOutput(a *app, sum tracker.Summary) statusOutput {
	out := statusOutput{
		User:       sum.User,
		State:      string(sum.State),
		TotalToday: timefmt.FormatDuration(sum.TotalToday),
		TotalAll:   timefmt.FormatDuration(sum.TotalAll),
	}
	if sum.State == model.StateClockedIn {
		out.Since = timefmt.FormatTimestamp(sum.Since, a.cfg.Format.TimestampLayout)
	}
	return out
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [user]",
		Short: "Show clock state and totals",
		Long:  "Show clock state and today/all-time totals for user, or for every known user when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			users := a.tracker.Users()
			if len(args) == 1 {
				users = []string{args[0]}
			}

			now := a.tracker.Now()
			rows := make([]statusOutput, 0, len(users))
			for _, u := range users {
				rows = append(rows, newStatusOutput(a, a.tracker.Summary(u, now)))
			}

			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), rows)
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet.")
				return nil
			}
			renderStatusTable(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

// headerRow is the row index lipgloss/table passes to StyleFunc for headers.
const headerRow = 0

func renderStatusTable(w io.Writer, rows []statusOutput) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("USER", "STATE", "SINCE", "TODAY", "ALL TIME").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range rows {
		t.Row(r.User, r.State, r.Since, r.TotalToday, r.TotalAll)
	}
	fmt.Fprintln(w, t.Render())
}
