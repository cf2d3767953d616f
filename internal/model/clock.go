package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session represents a single clock-in/clock-out span
type Session struct {
	Start time.Time
	End   *time.Time // nil while clocked in
	Note  string     // empty when no note was given
}

// sessionJSON is the persisted shape: instants as milliseconds since the epoch.
type sessionJSON struct {
	Start int64  `json:"start"`
	End   *int64 `json:"end,omitempty"`
	Note  string `json:"note,omitempty"`
}

// IsOpen returns true if the session has not been clocked out yet
func (s Session) IsOpen() bool {
	return s.End == nil
}

// Duration returns End-Start, using now as the end of an open session
func (s Session) Duration(now time.Time) time.Duration {
	if s.End != nil {
		return s.End.Sub(s.Start)
	}
	return now.Sub(s.Start)
}

// Close sets the end of the session
func (s *Session) Close(end time.Time) {
	s.End = &end
}

func (s Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{Start: s.Start.UnixMilli(), Note: s.Note}
	if s.End != nil {
		end := s.End.UnixMilli()
		out.End = &end
	}
	return json.Marshal(out)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var in sessionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.End != nil && *in.End < in.Start {
		return fmt.Errorf("session ends (%d) before it starts (%d)", *in.End, in.Start)
	}
	s.Start = time.UnixMilli(in.Start)
	s.End = nil
	if in.End != nil {
		end := time.UnixMilli(*in.End)
		s.End = &end
	}
	s.Note = in.Note
	return nil
}

// Instant truncates t to the millisecond precision sessions are stored with.
func Instant(t time.Time) time.Time {
	return time.UnixMilli(t.UnixMilli())
}
