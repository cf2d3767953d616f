package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/export"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/orgclock"
)

const (
	formatCSV = "csv"
	formatOrg = "org"
)

var (
	exportDir    string
	exportFormat string
	importUser   string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <user>",
		Short: "Write the session history of user to a file",
		Long: `Write the session history of user to timesheet_<user>_<YYYY-MM-DD>.csv
(or .org with --format org) in the export directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			dir := a.cfg.Export.Dir
			if exportDir != "" {
				dir = exportDir
			}
			user := args[0]
			now := a.tracker.Now()
			sessions := a.tracker.Sessions(user)

			var path string
			switch exportFormat {
			case formatCSV:
				path, err = export.WriteFile(dir, user, sessions, now, a.cfg.Format.TimestampLayout)
			case formatOrg:
				path, err = writeOrgFile(dir, user, sessions, now)
			default:
				return fmt.Errorf("unknown export format %q (want csv or org)", exportFormat)
			}
			if err != nil {
				return err
			}

			a.logger.Info("exported sessions", "user", user, "path", path, "count", len(sessions))
			if jsonOutput {
				result := map[string]any{
					"user":     user,
					"path":     path,
					"format":   exportFormat,
					"sessions": len(sessions),
				}
				if exportFormat == formatCSV {
					result["mime_type"] = export.MIMEType
				}
				return outputJSON(cmd.OutOrStdout(), result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(sessions), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&exportDir, "dir", "d", "", "directory to write into (default from config)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", formatCSV, "file format (csv, org)")
	return cmd
}

func writeOrgFile(dir, user string, sessions []model.Session, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := orgclock.Write(&buf, user, sessions); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	name := strings.TrimSuffix(export.Filename(user, now), ".csv") + ".org"
	path := export.FilePath(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import --user <user> <file.org>",
		Short: "Append org-mode CLOCK entries to the history of user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			sessions, err := orgclock.Parse(f)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}

			a, err := openApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.tracker.Import(cmd.Context(), importUser, sessions); err != nil {
				return err
			}
			if jsonOutput {
				return outputJSON(cmd.OutOrStdout(), map[string]any{
					"user":     importUser,
					"imported": len(sessions),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions for %s\n", len(sessions), importUser)
			return nil
		},
	}
	cmd.Flags().StringVarP(&importUser, "user", "u", "", "user receiving the sessions")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
