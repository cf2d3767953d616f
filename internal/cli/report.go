package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/tracker"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var reportFormat string

// reportOutput is the full history of one user with both totals.
type reportOutput struct {
	statusOutput `yaml:",inline"`
	Sessions     []sessionOutput `json:"sessions" yaml:"sessions"`
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <user>",
		Short: "Print totals and session history of user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := reportFormat
			if jsonOutput {
				format = formatJSON
			}
			switch format {
			case formatTable, formatJSON, formatYAML:
			default:
				return fmt.Errorf("unknown report format %q (want table, json or yaml)", format)
			}

			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			user := args[0]
			sum := a.tracker.Summary(user, a.tracker.Now())
			report := reportOutput{statusOutput: newStatusOutput(a, sum)}
			for _, s := range tracker.ByStart(sum.All) {
				report.Sessions = append(report.Sessions, newSessionOutput(a, user, s.Session))
			}

			w := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return outputJSON(w, report)
			case formatYAML:
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			}
			renderReport(w, report)
			return nil
		},
	}
	cmd.Flags().StringVarP(&reportFormat, "format", "f", formatTable, "output format (table, json, yaml)")
	return cmd
}

func renderReport(w io.Writer, r reportOutput) {
	label := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(w, "%s %s\n", label.Render("User:"), r.User)
	fmt.Fprintf(w, "%s %s\n", label.Render("State:"), r.State)
	if r.Since != "" {
		fmt.Fprintf(w, "%s %s\n", label.Render("Since:"), r.Since)
	}
	fmt.Fprintf(w, "%s %s\n", label.Render("Total today:"), r.TotalToday)
	fmt.Fprintf(w, "%s %s\n", label.Render("Total all time:"), r.TotalAll)

	if len(r.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions.")
		return
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "START", "END", "DURATION", "NOTE").
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	for i, s := range r.Sessions {
		end := s.End
		if end == "" {
			end = "(running)"
		}
		t.Row(strconv.Itoa(i+1), s.Start, end, s.Duration, s.Note)
	}
	fmt.Fprintln(w, t.Render())
}
