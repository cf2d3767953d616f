package orgclock

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/model"
)

var t0 = time.Date(2024, 5, 14, 9, 0, 0, 0, time.Local)

func TestWrite(t *testing.T) {
	end := t0.Add(61*time.Minute + 30*time.Second)
	sessions := []model.Session{
		{Start: t0, End: &end, Note: "standup"},
		{Start: t0.Add(2 * time.Hour)},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "alice", sessions))

	want := strings.Join([]string{
		"* alice",
		":LOGBOOK:",
		"CLOCK: [2024-05-14 Tue 11:00]",
		"CLOCK: [2024-05-14 Tue 09:00]--[2024-05-14 Tue 10:01] =>  1:01",
		":END:",
		"- [2024-05-14 Tue 09:00] standup",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWrite_NoUser(t *testing.T) {
	assert.ErrorIs(t, Write(&bytes.Buffer{}, " ", nil), errclass.ErrExportNoUser)
}

func TestParse_RoundTrip(t *testing.T) {
	end := t0.Add(95 * time.Minute)
	sessions := []model.Session{
		{Start: t0, End: &end, Note: "review"},
		{Start: t0.Add(3 * time.Hour)},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "alice", sessions))

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.True(t, parsed[0].Start.Equal(t0))
	require.NotNil(t, parsed[0].End)
	assert.True(t, parsed[0].End.Equal(end))
	assert.Equal(t, "review", parsed[0].Note)
	assert.True(t, parsed[1].IsOpen())
	assert.Equal(t, "", parsed[1].Note)
}

func TestParse_SameMinuteNotesKeepOrder(t *testing.T) {
	firstEnd := t0.Add(10 * time.Second)
	secondEnd := t0.Add(20 * time.Second)
	sessions := []model.Session{
		{Start: t0, End: &firstEnd, Note: "first"},
		{Start: t0.Add(15 * time.Second), End: &secondEnd, Note: "second"},
		{Start: t0.Add(30 * time.Second)},
		{Start: t0.Add(40 * time.Second), Note: "fourth"},
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "alice", sessions))
	assert.Contains(t, buf.String(), "- [2024-05-14 Tue 09:00]\n")

	parsed, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, 4)
	assert.Equal(t, "first", parsed[0].Note)
	assert.Equal(t, "second", parsed[1].Note)
	assert.Equal(t, "", parsed[2].Note)
	assert.Equal(t, "fourth", parsed[3].Note)
}

func TestParse_IgnoresOtherLines(t *testing.T) {
	input := `* TODO Something
SCHEDULED: <2024-05-14 Tue>
:LOGBOOK:
CLOCK: [2024-05-14 Tue 09:00]--[2024-05-14 Tue 09:30] =>  0:30
:END:
Some notes here.
`
	parsed, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, 30*time.Minute, parsed[0].End.Sub(parsed[0].Start))
}

func TestParse_BadTimestamp(t *testing.T) {
	_, err := Parse(strings.NewReader("CLOCK: [yesterday-ish]\n"))
	assert.ErrorContains(t, err, "line 1")
}

func TestFormatClockDuration(t *testing.T) {
	assert.Equal(t, "0:00", formatClockDuration(0))
	assert.Equal(t, "1:01", formatClockDuration(61*time.Minute))
	assert.Equal(t, "100:00", formatClockDuration(100*time.Hour))
	assert.Equal(t, "0:00", formatClockDuration(-time.Minute))
}
