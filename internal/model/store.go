package model

import "time"

// UserRecord holds one user's sessions in insertion order
type UserRecord struct {
	Sessions []Session `json:"sessions"`
}

// Store maps a user name to its record. Names are case-sensitive.
type Store map[string]UserRecord

// OpenIndexes returns the positions of every session lacking an end.
// More than one entry means the persisted data was corrupted.
func (r UserRecord) OpenIndexes() []int {
	var idx []int
	for i, s := range r.Sessions {
		if s.IsOpen() {
			idx = append(idx, i)
		}
	}
	return idx
}

// State returns whether the user is clocked in
func (r UserRecord) State() ClockState {
	if len(r.OpenIndexes()) > 0 {
		return StateClockedIn
	}
	return StateClockedOut
}

// Clone returns a deep copy of the record
func (r UserRecord) Clone() UserRecord {
	if r.Sessions == nil {
		return UserRecord{}
	}
	sessions := make([]Session, len(r.Sessions))
	for i, s := range r.Sessions {
		sessions[i] = s
		if s.End != nil {
			end := *s.End
			sessions[i].End = &end
		}
	}
	return UserRecord{Sessions: sessions}
}

// Clone returns a deep copy of the store
func (st Store) Clone() Store {
	out := make(Store, len(st))
	for name, rec := range st {
		out[name] = rec.Clone()
	}
	return out
}

// TotalDuration sums every session, counting open sessions up to now
func TotalDuration(sessions []Session, now time.Time) time.Duration {
	var total time.Duration
	for _, s := range sessions {
		total += s.Duration(now)
	}
	return total
}
