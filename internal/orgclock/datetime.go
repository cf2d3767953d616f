package orgclock

import (
	"fmt"
	"time"
)

// parseClockTimestamp parses org-mode clock timestamp format in local time
func parseClockTimestamp(timestampStr string) (time.Time, error) {
	// Org-mode clock format: [2024-01-15 Mon 10:00]
	formats := []string{
		"2006-01-02 Mon 15:04",
		"2006-01-02 Mon 15:04:05",
		"2006-01-02 15:04",
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, timestampStr, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse clock timestamp: %s", timestampStr)
}

// formatClockTimestamp formats a time as org-mode clock timestamp
func formatClockTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 Mon 15:04")
}

// formatClockDuration formats d as org's H:MM clock sum
func formatClockDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
