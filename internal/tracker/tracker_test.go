package tracker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/config"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/storage"
)

var t0 = time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)

// failingBackend loads what it is given and refuses every save.
type failingBackend struct{ st model.Store }

func (f failingBackend) Load(context.Context) model.Store        { return f.st.Clone() }
func (f failingBackend) Save(context.Context, model.Store) error { return errors.New("disk full") }
func (f failingBackend) Close() error                            { return nil }

func newTestTracker(t *testing.T) (*Tracker, *ManualClock, storage.Backend) {
	t.Helper()
	backend := storage.NewFileBackend(filepath.Join(t.TempDir(), "sessions.json"), config.DefaultStorageKey, nil)
	clock := &ManualClock{T: t0}
	tr, err := New(context.Background(), backend, clock, nil)
	require.NoError(t, err)
	return tr, clock, backend
}

func TestTracker_EndToEnd(t *testing.T) {
	ctx := context.Background()
	tr, clock, backend := newTestTracker(t)

	s, err := tr.ClockIn(ctx, "alice", "  standup ")
	require.NoError(t, err)
	assert.Equal(t, "standup", s.Note)
	assert.True(t, s.IsOpen())

	clock.Advance(3_661_000 * time.Millisecond)
	closed, err := tr.ClockOut(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, closed.End)

	sessions := tr.Sessions("alice")
	require.Len(t, sessions, 1)
	for _, later := range []time.Duration{0, time.Hour, 48 * time.Hour} {
		assert.Equal(t, 3661*time.Second, TotalDuration(sessions, clock.Now().Add(later)))
	}

	// Every mutation is persisted
	assert.Equal(t, tr.Snapshot(), backend.Load(ctx))
}

func TestTracker_ClockInValidation(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	for _, user := range []string{"", "   "} {
		_, err := tr.ClockIn(ctx, user, "note")
		assert.ErrorIs(t, err, errclass.ErrNoUser)
	}
	assert.Empty(t, tr.Users())

	_, err := tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)
	_, err = tr.ClockIn(ctx, "alice", "again")
	assert.ErrorIs(t, err, errclass.ErrSessionOpen)
	assert.Len(t, tr.Sessions("alice"), 1)

	// Other users are independent
	_, err = tr.ClockIn(ctx, "bob", "")
	assert.NoError(t, err)
}

func TestTracker_ClockOutWithoutOpenSession(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)

	_, err := tr.ClockOut(ctx, "alice")
	assert.ErrorIs(t, err, errclass.ErrNoOpenSession)

	_, err = tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)
	_, err = tr.ClockOut(ctx, "alice")
	require.NoError(t, err)
	_, err = tr.ClockOut(ctx, "alice")
	assert.ErrorIs(t, err, errclass.ErrNoOpenSession)
}

func TestTracker_AtMostOneOpenSession(t *testing.T) {
	ctx := context.Background()
	tr, clock, _ := newTestTracker(t)

	ops := []string{"in", "in", "out", "out", "in", "out", "in", "in", "out", "in"}
	for _, op := range ops {
		clock.Advance(time.Minute)
		hadOpen := len(model.UserRecord{Sessions: tr.Sessions("alice")}.OpenIndexes()) == 1
		switch op {
		case "in":
			_, err := tr.ClockIn(ctx, "alice", "")
			if hadOpen {
				assert.ErrorIs(t, err, errclass.ErrSessionOpen)
			} else {
				assert.NoError(t, err)
			}
		case "out":
			_, err := tr.ClockOut(ctx, "alice")
			if hadOpen {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errclass.ErrNoOpenSession)
			}
		}
		rec := model.UserRecord{Sessions: tr.Sessions("alice")}
		assert.LessOrEqual(t, len(rec.OpenIndexes()), 1)
	}
}

func TestTracker_TotalDurationMonotonicWhileOpen(t *testing.T) {
	ctx := context.Background()
	tr, clock, _ := newTestTracker(t)

	_, err := tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)
	clock.Advance(10 * time.Minute)
	_, err = tr.ClockOut(ctx, "alice")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	_, err = tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)

	sessions := tr.Sessions("alice")
	prev := time.Duration(-1)
	for i := 0; i < 5; i++ {
		total := TotalDuration(sessions, clock.Now().Add(time.Duration(i)*time.Minute))
		assert.Greater(t, total, prev)
		prev = total
	}
	assert.Equal(t, 10*time.Minute+4*time.Minute, prev)
}

func TestTracker_ClearUserAndClearAll(t *testing.T) {
	ctx := context.Background()
	tr, _, backend := newTestTracker(t)

	for _, u := range []string{"alice", "bob"} {
		_, err := tr.ClockIn(ctx, u, "")
		require.NoError(t, err)
	}

	require.NoError(t, tr.ClearUser(ctx, "nobody"))
	require.NoError(t, tr.ClearUser(ctx, ""))
	assert.Equal(t, []string{"alice", "bob"}, tr.Users())

	require.NoError(t, tr.ClearUser(ctx, "alice"))
	assert.Equal(t, []string{"bob"}, tr.Users())
	assert.Nil(t, tr.Sessions("alice"))

	require.NoError(t, tr.ClearAll(ctx))
	assert.Empty(t, tr.Users())
	assert.Empty(t, backend.Load(ctx))
}

func TestTracker_FailedSaveLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	st := model.Store{"alice": {Sessions: []model.Session{{Start: model.Instant(t0)}}}}
	tr, err := New(ctx, failingBackend{st: st}, &ManualClock{T: t0.Add(time.Hour)}, nil)
	require.NoError(t, err)

	_, err = tr.ClockOut(ctx, "alice")
	require.Error(t, err)
	assert.False(t, errclass.IsValidation(err))
	_, open := tr.OpenSession("alice")
	assert.True(t, open)

	assert.Error(t, tr.ClearAll(ctx))
	assert.Equal(t, []string{"alice"}, tr.Users())
}

func TestNew_RepairsMultipleOpenSessions(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewFileBackend(filepath.Join(t.TempDir(), "s.json"), config.DefaultStorageKey, nil)
	s1, s2, s3 := model.Instant(t0), model.Instant(t0.Add(time.Hour)), model.Instant(t0.Add(2*time.Hour))
	require.NoError(t, backend.Save(ctx, model.Store{
		"alice": {Sessions: []model.Session{{Start: s1}, {Start: s2}, {Start: s3, Note: "latest"}}},
	}))

	tr, err := New(ctx, backend, &ManualClock{T: t0.Add(3 * time.Hour)}, nil)
	require.NoError(t, err)

	sessions := tr.Sessions("alice")
	require.Len(t, sessions, 3)
	assert.Equal(t, s2, *sessions[0].End)
	assert.Equal(t, s3, *sessions[1].End)
	assert.True(t, sessions[2].IsOpen())

	open, ok := tr.OpenSession("alice")
	require.True(t, ok)
	assert.Equal(t, "latest", open.Note)

	// The repair was persisted
	assert.Equal(t, tr.Snapshot(), backend.Load(ctx))
}

func TestClockOut_ClosesFirstOpenWhenCorrupted(t *testing.T) {
	st := model.Store{"alice": {Sessions: []model.Session{{Start: model.Instant(t0)}, {Start: model.Instant(t0.Add(time.Minute))}}}}
	next, closed, openCount, err := clockOut(st, "alice", t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, openCount)
	assert.Equal(t, model.Instant(t0), closed.Start)
	assert.Equal(t, []int{1}, next["alice"].OpenIndexes())
	// Input untouched
	assert.Len(t, st["alice"].OpenIndexes(), 2)
}

func TestClockOut_ClockBehindStart(t *testing.T) {
	st := model.Store{"alice": {Sessions: []model.Session{{Start: model.Instant(t0)}}}}
	next, _, _, err := clockOut(st, "alice", t0.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, model.Instant(t0), *next["alice"].Sessions[0].End)
}

func TestSessionsForToday(t *testing.T) {
	day := func(d int, h int) model.Session {
		return model.Session{Start: time.Date(2024, 5, d, h, 0, 0, 0, time.Local)}
	}
	sessions := []model.Session{day(13, 23), day(14, 0), day(15, 8), day(14, 23), day(13, 1)}

	today := SessionsForToday(sessions, time.Date(2024, 5, 14, 12, 0, 0, 0, time.Local))
	assert.Equal(t, []model.Session{day(14, 0), day(14, 23)}, today)

	assert.Empty(t, SessionsForToday(sessions, time.Date(2024, 5, 16, 12, 0, 0, 0, time.Local)))
}

func TestTracker_ImportKeepsSingleOpenSession(t *testing.T) {
	ctx := context.Background()
	tr, _, _ := newTestTracker(t)
	_, err := tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)

	end := model.Instant(t0.Add(-time.Hour))
	closedSession := model.Session{Start: model.Instant(t0.Add(-2 * time.Hour)), End: &end}
	require.NoError(t, tr.Import(ctx, "alice", []model.Session{closedSession}))
	assert.Len(t, tr.Sessions("alice"), 2)

	err = tr.Import(ctx, "alice", []model.Session{{Start: model.Instant(t0.Add(-3 * time.Hour))}})
	assert.ErrorIs(t, err, errclass.ErrSessionOpen)

	bad := model.Session{Start: end.Add(time.Hour), End: &end}
	err = tr.Import(ctx, "bob", []model.Session{bad})
	assert.ErrorIs(t, err, errclass.ErrInvalidSession)
	assert.Len(t, tr.Sessions("alice"), 2)
	assert.Nil(t, tr.Sessions("bob"))
}

func TestSortUsers_LocaleOrder(t *testing.T) {
	users := []string{"zoe", "Émile", "bob", "alice"}
	SortUsers(users)
	assert.Equal(t, []string{"alice", "bob", "Émile", "zoe"}, users)
}

func TestByStart(t *testing.T) {
	a := model.Session{Start: model.Instant(t0.Add(2 * time.Hour))}
	b := model.Session{Start: model.Instant(t0)}
	rows := ByStart([]model.Session{a, b})
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 1, rows[1].Index)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	tr, clock, _ := newTestTracker(t)

	_, err := tr.ClockIn(ctx, "alice", "")
	require.NoError(t, err)
	clock.Advance(30 * time.Minute)

	sum := tr.Summary("alice", clock.Now())
	assert.Equal(t, model.StateClockedIn, sum.State)
	assert.Equal(t, model.Instant(t0), sum.Since)
	assert.Equal(t, 30*time.Minute, sum.TotalToday)
	assert.Equal(t, 30*time.Minute, sum.TotalAll)

	// Next day: nothing today, all-time keeps counting
	tomorrow := clock.Now().Add(24 * time.Hour)
	sum = tr.Summary("alice", tomorrow)
	assert.Empty(t, sum.Today)
	assert.Equal(t, 24*time.Hour+30*time.Minute, sum.TotalAll)

	empty := tr.Summary("nobody", clock.Now())
	assert.Equal(t, model.StateClockedOut, empty.State)
	assert.True(t, empty.Since.IsZero())

	_, err = tr.ClockOut(ctx, "alice")
	require.NoError(t, err)
	sum = tr.Summary("alice", clock.Now())
	assert.Equal(t, model.StateClockedOut, sum.State)
	assert.True(t, sum.Since.IsZero())
	assert.Equal(t, 30*time.Minute, sum.TotalAll)
}
