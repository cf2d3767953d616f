package tracker

import (
	"time"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// Summary is the derived view of one user at a given instant.
type Summary struct {
	User       string
	State      model.ClockState
	Since      time.Time // start of the open session, zero when clocked out
	Today      []model.Session
	All        []model.Session
	TotalToday time.Duration
	TotalAll   time.Duration
}

// Summary derives today's sessions and running totals for user at now.
// It reads the store only and must be recomputed on every tick while a
// session is open.
func (t *Tracker) Summary(user string, now time.Time) Summary {
	all := t.Sessions(user)
	today := SessionsForToday(all, now)
	sum := Summary{
		User:       user,
		State:      t.store[user].State(),
		Today:      today,
		All:        all,
		TotalToday: TotalDuration(today, now),
		TotalAll:   TotalDuration(all, now),
	}
	if open, ok := t.OpenSession(user); ok {
		sum.Since = open.Start
	}
	return sum
}
