package errclass_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/LizzyTrevisan/Time-Tracker-Clock-in-Clock-Out-System/internal/errclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	assert.Equal(t, "E_NO_USER: no user selected", errclass.ErrNoUser.Error())
	assert.Equal(t, "E_X", (&errclass.ValidationError{Code: "E_X"}).Error())
}

func TestValidationError_IsMatchesCode(t *testing.T) {
	err := errclass.ErrSessionOpen.WithMessagef("user %q", "alice")
	require.True(t, errors.Is(err, errclass.ErrSessionOpen))
	require.False(t, errors.Is(err, errclass.ErrNoOpenSession))

	wrapped := fmt.Errorf("clock in: %w", err)
	assert.True(t, errors.Is(wrapped, errclass.ErrSessionOpen))
	assert.True(t, errclass.IsValidation(wrapped))
	assert.False(t, errclass.IsValidation(errors.New("disk full")))
}

func TestUserMessage_DistinctPerError(t *testing.T) {
	msgs := map[string]bool{}
	for _, err := range []error{
		errclass.ErrNoUser,
		errclass.ErrSessionOpen,
		errclass.ErrNoOpenSession,
		errclass.ErrExportNoUser,
		errclass.ErrInvalidSession,
	} {
		msg := errclass.UserMessage(err)
		assert.NotEmpty(t, msg)
		assert.False(t, msgs[msg], "duplicate message %q", msg)
		msgs[msg] = true
	}
	assert.Equal(t, "", errclass.UserMessage(nil))
	assert.Equal(t, "boom", errclass.UserMessage(errors.New("boom")))
}
