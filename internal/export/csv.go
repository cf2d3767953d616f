// Package export turns a user's sessions into a timesheet file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
)

// MIMEType is the content type of the CSV document.
const MIMEType = "text/csv; charset=utf-8"

var header = []string{"User", "Start", "End", "Duration(hh:mm:ss)", "Note"}

// CSV renders one header row and one row per session. Open sessions have a
// blank End; now is only used for their running Duration.
func CSV(user string, sessions []model.Session, now time.Time, layout string) ([]byte, error) {
	if strings.TrimSpace(user) == "" {
		return nil, errclass.ErrExportNoUser
	}

	rows := make([][]string, 0, len(sessions)+1)
	rows = append(rows, header)
	for _, s := range sessions {
		end := ""
		if s.End != nil {
			end = timefmt.FormatTimestamp(*s.End, layout)
		}
		rows = append(rows, []string{
			user,
			timefmt.FormatTimestamp(s.Start, layout),
			end,
			timefmt.FormatDuration(s.Duration(now)),
			s.Note,
		})
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, field := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(quote(field))
		}
	}
	return []byte(b.String()), nil
}

// quote wraps field in double quotes, doubling embedded quotes.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// Filename is timesheet_<user>_<YYYY-MM-DD>.csv for the day of now.
func Filename(user string, now time.Time) string {
	return fmt.Sprintf("timesheet_%s_%s.csv", user, timefmt.DayKey(now))
}

// WriteFile renders the CSV and writes it into dir, returning its path.
func WriteFile(dir, user string, sessions []model.Session, now time.Time, layout string) (string, error) {
	data, err := CSV(user, sessions, now, layout)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := FilePath(dir, Filename(user, now))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// FilePath joins dir and name after replacing path separators in name.
func FilePath(dir, name string) string {
	return filepath.Join(dir, safeName(name))
}

// safeName keeps a user name from escaping the export directory.
func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '_'
		}
		return r
	}, name)
}
