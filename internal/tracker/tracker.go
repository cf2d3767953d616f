// Package tracker is the single writer of the session store. Every mutation
// is computed on a copy, saved wholesale, and only then swapped in.
package tracker

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/storage"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/timefmt"
)

// Tracker owns the in-memory store and persists it after each change.
type Tracker struct {
	store   model.Store
	clock   Clock
	backend storage.Backend
	logger  *log.Logger
}

// New loads the store from backend and repairs users left with more than
// one open session.
func New(ctx context.Context, backend storage.Backend, clock Clock, logger *log.Logger) (*Tracker, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Tracker{
		store:   backend.Load(ctx),
		clock:   clock,
		backend: backend,
		logger:  logger,
	}

	next, repaired := repair(t.store)
	if len(repaired) > 0 {
		for user, n := range repaired {
			t.logger.Warn("closed dangling open sessions", "user", user, "closed", n)
		}
		if err := t.commit(ctx, next); err != nil {
			return nil, fmt.Errorf("save repaired sessions: %w", err)
		}
	}
	return t, nil
}

// Now returns the tracker clock's current instant.
func (t *Tracker) Now() time.Time {
	return t.clock.Now()
}

// commit persists next and makes it current. On failure nothing changes.
func (t *Tracker) commit(ctx context.Context, next model.Store) error {
	if err := t.backend.Save(ctx, next); err != nil {
		t.logger.Error("saving sessions failed", "err", err)
		return err
	}
	t.store = next
	return nil
}

// ClockIn opens a new session for user starting now.
func (t *Tracker) ClockIn(ctx context.Context, user, note string) (model.Session, error) {
	next, session, err := clockIn(t.store, user, note, t.clock.Now())
	if err != nil {
		return model.Session{}, err
	}
	if err := t.commit(ctx, next); err != nil {
		return model.Session{}, fmt.Errorf("clock in: %w", err)
	}
	t.logger.Debug("clocked in", "user", user, "start", session.Start)
	return session, nil
}

// ClockOut ends the user's open session now.
func (t *Tracker) ClockOut(ctx context.Context, user string) (model.Session, error) {
	next, session, openCount, err := clockOut(t.store, user, t.clock.Now())
	if err != nil {
		return model.Session{}, err
	}
	if openCount > 1 {
		t.logger.Warn("more than one open session, closing the first", "user", user, "open", openCount)
	}
	if err := t.commit(ctx, next); err != nil {
		return model.Session{}, fmt.Errorf("clock out: %w", err)
	}
	t.logger.Debug("clocked out", "user", user, "duration", session.End.Sub(session.Start))
	return session, nil
}

// ClearUser removes every session of user. Unknown or empty names are a no-op.
func (t *Tracker) ClearUser(ctx context.Context, user string) error {
	next, changed := clearUser(t.store, user)
	if !changed {
		return nil
	}
	if err := t.commit(ctx, next); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	t.logger.Info("cleared user", "user", user)
	return nil
}

// ClearAll empties the store.
func (t *Tracker) ClearAll(ctx context.Context) error {
	if err := t.commit(ctx, model.Store{}); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	t.logger.Info("cleared all data")
	return nil
}

// Import appends sessions to user's history.
func (t *Tracker) Import(ctx context.Context, user string, sessions []model.Session) error {
	next, err := importSessions(t.store, user, sessions)
	if err != nil {
		return err
	}
	if err := t.commit(ctx, next); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	t.logger.Info("imported sessions", "user", user, "count", len(sessions))
	return nil
}

// OpenSession returns the user's open session, if any.
func (t *Tracker) OpenSession(user string) (model.Session, bool) {
	rec := t.store[user]
	open := rec.OpenIndexes()
	if len(open) == 0 {
		return model.Session{}, false
	}
	if len(open) > 1 {
		t.logger.Warn("more than one open session", "user", user, "open", len(open))
	}
	return rec.Sessions[open[0]], true
}

// Sessions returns a copy of user's sessions in insertion order.
func (t *Tracker) Sessions(user string) []model.Session {
	return t.store[user].Clone().Sessions
}

// Snapshot returns a deep copy of the whole store.
func (t *Tracker) Snapshot() model.Store {
	return t.store.Clone()
}

// Users returns every known user name in locale order.
func (t *Tracker) Users() []string {
	users := make([]string, 0, len(t.store))
	for name := range t.store {
		users = append(users, name)
	}
	SortUsers(users)
	return users
}

// SortUsers orders names with locale-aware collation, falling back to byte
// order between names the collator considers equal.
func SortUsers(users []string) {
	c := collate.New(language.Und)
	sort.SliceStable(users, func(i, j int) bool {
		if r := c.CompareString(users[i], users[j]); r != 0 {
			return r < 0
		}
		return users[i] < users[j]
	})
}

// SessionsForToday keeps sessions whose start falls on ref's local calendar day.
func SessionsForToday(sessions []model.Session, ref time.Time) []model.Session {
	var today []model.Session
	for _, s := range sessions {
		if timefmt.SameDay(s.Start, ref) {
			today = append(today, s)
		}
	}
	return today
}

// TotalDuration sums sessions, counting open ones up to now.
func TotalDuration(sessions []model.Session, now time.Time) time.Duration {
	return model.TotalDuration(sessions, now)
}

// IndexedSession pairs a session with its 1-based insertion position.
type IndexedSession struct {
	Index int
	model.Session
}

// ByStart returns sessions ordered by start, keeping their insertion index.
func ByStart(sessions []model.Session) []IndexedSession {
	rows := make([]IndexedSession, len(sessions))
	for i, s := range sessions {
		rows[i] = IndexedSession{Index: i + 1, Session: s}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})
	return rows
}
