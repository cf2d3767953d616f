// Package timefmt renders instants and durations for tables, cards and exports.
package timefmt

import (
	"fmt"
	"time"
)

// DefaultLayout is used when no timestamp layout is configured.
const DefaultLayout = "2006-01-02 15:04:05"

// DayKeyLayout is the calendar date identifier used for "today" and export file names.
const DayKeyLayout = "2006-01-02"

// FormatTimestamp renders t in local time with fixed-width fields.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultLayout
	}
	return t.Local().Format(layout)
}

// FormatDuration renders d as HH:MM:SS. Hours are not wrapped at 24 and may
// grow past two digits; sub-second remainders are dropped.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSec := int64(d / time.Second)
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// DayKey returns the local calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Local().Format(DayKeyLayout)
}

// SameDay reports whether a and b fall on the same local calendar date.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
