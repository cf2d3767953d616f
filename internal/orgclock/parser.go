package orgclock

import (
	"bufio"
	"fmt"
	"io"
	"regexp"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// Parser patterns
var (
	clockPattern = regexp.MustCompile(`CLOCK:\s*\[([^\]]+)\](?:--\[([^\]]+)\])?`)
	notePattern  = regexp.MustCompile(`^\s*-\s+\[([^\]]+)\]\s*(.*?)\s*$`)
)

// Parse reads every CLOCK line in r, oldest first, and attaches "- [stamp] note"
// items to the clocks that started at that stamp, in order of appearance.
// Lines that are neither are ignored.
func Parse(r io.Reader) ([]model.Session, error) {
	var sessions []model.Session
	notes := make(map[string][]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// Check for CLOCK (can be inside or outside drawer)
		if matches := clockPattern.FindStringSubmatch(line); matches != nil {
			startTime, err := parseClockTimestamp(matches[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			entry := model.Session{Start: startTime}
			if len(matches) > 2 && matches[2] != "" {
				endTime, err := parseClockTimestamp(matches[2])
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				entry.End = &endTime
			}
			sessions = append(sessions, entry)
			continue
		}

		if matches := notePattern.FindStringSubmatch(line); matches != nil {
			if t, err := parseClockTimestamp(matches[1]); err == nil {
				key := formatClockTimestamp(t)
				notes[key] = append(notes[key], matches[2])
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// The drawer lists newest first
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	for i := range sessions {
		key := formatClockTimestamp(sessions[i].Start)
		if queue := notes[key]; len(queue) > 0 {
			sessions[i].Note = queue[0]
			notes[key] = queue[1:]
		}
	}
	return sessions, nil
}
