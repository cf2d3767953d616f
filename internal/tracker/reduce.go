package tracker

import (
	"strings"
	"time"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

// The functions below are pure: they never modify st and return the next store.

func clockIn(st model.Store, user, note string, now time.Time) (model.Store, model.Session, error) {
	if strings.TrimSpace(user) == "" {
		return st, model.Session{}, errclass.ErrNoUser
	}
	if len(st[user].OpenIndexes()) > 0 {
		return st, model.Session{}, errclass.ErrSessionOpen.WithMessagef("session already open for %q", user)
	}

	session := model.Session{Start: model.Instant(now), Note: strings.TrimSpace(note)}
	next := st.Clone()
	rec := next[user]
	rec.Sessions = append(rec.Sessions, session)
	next[user] = rec
	return next, session, nil
}

// clockOut closes the first open session of user. openCount reports how many
// were open before, so callers can flag corrupted data.
func clockOut(st model.Store, user string, now time.Time) (next model.Store, closed model.Session, openCount int, err error) {
	open := st[user].OpenIndexes()
	if len(open) == 0 {
		return st, model.Session{}, 0, errclass.ErrNoOpenSession
	}

	next = st.Clone()
	rec := next[user]
	end := model.Instant(now)
	if end.Before(rec.Sessions[open[0]].Start) {
		// Wall clock went backwards; never store end < start.
		end = rec.Sessions[open[0]].Start
	}
	rec.Sessions[open[0]].Close(end)
	next[user] = rec
	return next, rec.Sessions[open[0]], len(open), nil
}

func clearUser(st model.Store, user string) (model.Store, bool) {
	if _, ok := st[user]; !ok || user == "" {
		return st, false
	}
	next := st.Clone()
	delete(next, user)
	return next, true
}

// importSessions appends sessions to user, keeping the one-open-session rule.
func importSessions(st model.Store, user string, sessions []model.Session) (model.Store, error) {
	if strings.TrimSpace(user) == "" {
		return st, errclass.ErrNoUser
	}
	open := len(st[user].OpenIndexes())
	for _, s := range sessions {
		if s.End != nil && s.End.Before(s.Start) {
			return st, errclass.ErrInvalidSession.WithMessagef("session starting %s ends before it starts", s.Start)
		}
		if s.IsOpen() {
			open++
		}
	}
	if open > 1 {
		return st, errclass.ErrSessionOpen.WithMessagef("import would leave %d open sessions for %q", open, user)
	}

	next := st.Clone()
	rec := next[user]
	rec.Sessions = append(rec.Sessions, sessions...)
	next[user] = rec.Clone()
	return next, nil
}

// repair closes all but the last open session of every user. A closed
// session ends where the next one starts, or at its own start if that
// would put end before start.
func repair(st model.Store) (model.Store, map[string]int) {
	var repaired map[string]int
	var next model.Store
	for user, rec := range st {
		open := rec.OpenIndexes()
		if len(open) < 2 {
			continue
		}
		if next == nil {
			next = st.Clone()
			repaired = make(map[string]int)
		}
		fixed := next[user]
		for _, i := range open[:len(open)-1] {
			end := fixed.Sessions[i].Start
			if i+1 < len(fixed.Sessions) && fixed.Sessions[i+1].Start.After(end) {
				end = fixed.Sessions[i+1].Start
			}
			fixed.Sessions[i].Close(end)
		}
		next[user] = fixed
		repaired[user] = len(open) - 1
	}
	if next == nil {
		return st, nil
	}
	return next, repaired
}
