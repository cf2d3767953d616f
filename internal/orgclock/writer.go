// Package orgclock reads and writes sessions as an org-mode LOGBOOK drawer.
package orgclock

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// Write writes a "* user" heading, a :LOGBOOK: drawer with one CLOCK line per
// session, and the session notes as list items keyed by their start stamp
// and ordered like the sessions.
// Org clocks have minute precision, so seconds are dropped.
func Write(w io.Writer, user string, sessions []model.Session) error {
	if strings.TrimSpace(user) == "" {
		return errclass.ErrExportNoUser
	}
	writer := bufio.NewWriter(w)

	if _, err := writer.WriteString("* " + user + "\n"); err != nil {
		return err
	}

	if len(sessions) > 0 {
		if _, err := writer.WriteString(":LOGBOOK:\n"); err != nil {
			return err
		}
		// Newest first, as org-mode inserts clocks at the top of the drawer
		for i := len(sessions) - 1; i >= 0; i-- {
			entry := sessions[i]
			clockLine := fmt.Sprintf("CLOCK: [%s]", formatClockTimestamp(entry.Start))
			if entry.End != nil {
				clockLine += fmt.Sprintf("--[%s] =>  %s",
					formatClockTimestamp(*entry.End),
					formatClockDuration(entry.End.Truncate(time.Minute).Sub(entry.Start.Truncate(time.Minute))))
			}
			clockLine += "\n"
			if _, err := writer.WriteString(clockLine); err != nil {
				return err
			}
		}
		if _, err := writer.WriteString(":END:\n"); err != nil {
			return err
		}
	}

	// Notes in session order. Sessions sharing a minute stamp each get an
	// item, empty or not, so Parse can pair them by position.
	perStamp := make(map[string]int)
	for _, entry := range sessions {
		perStamp[formatClockTimestamp(entry.Start)]++
	}
	for _, entry := range sessions {
		stamp := formatClockTimestamp(entry.Start)
		if entry.Note == "" && perStamp[stamp] < 2 {
			continue
		}
		noteLine := strings.TrimRight(fmt.Sprintf("- [%s] %s", stamp, entry.Note), " ") + "\n"
		if _, err := writer.WriteString(noteLine); err != nil {
			return err
		}
	}

	return writer.Flush()
}
