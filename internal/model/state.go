package model

// ClockState is the per-user state: clocked in while a session is open
type ClockState string

const (
	StateClockedOut ClockState = "Clocked Out"
	StateClockedIn  ClockState = "Clocked In"
)
