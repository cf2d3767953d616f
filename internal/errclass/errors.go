// Package errclass holds the validation errors surfaced to the person at the clock.
package errclass

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected precondition. Nothing is mutated when one is returned.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on Code so that errors carrying extra detail still compare equal
// to the sentinel they were built from.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && e.Code == t.Code
}

// WithMessagef returns a new ValidationError with a formatted message.
func (e *ValidationError) WithMessagef(format string, args ...any) *ValidationError {
	return &ValidationError{Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

var (
	ErrNoUser         = &ValidationError{Code: "E_NO_USER", Message: "no user selected"}
	ErrSessionOpen    = &ValidationError{Code: "E_SESSION_OPEN", Message: "session already open"}
	ErrNoOpenSession  = &ValidationError{Code: "E_NO_OPEN_SESSION", Message: "no open session"}
	ErrExportNoUser   = &ValidationError{Code: "E_EXPORT_NO_USER", Message: "no user selected for export"}
	ErrInvalidSession = &ValidationError{Code: "E_INVALID_SESSION", Message: "session ends before it starts"}
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UserMessage turns err into the sentence shown to the end user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoUser):
		return "Please select a user before starting a session."
	case errors.Is(err, ErrSessionOpen):
		return "Please clock out the current session before starting a new one."
	case errors.Is(err, ErrNoOpenSession):
		return "No ongoing session to clock out from."
	case errors.Is(err, ErrExportNoUser):
		return "Select a user first."
	case errors.Is(err, ErrInvalidSession):
		return "A session cannot end before it starts."
	}
	return err.Error()
}
