package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrNotFound(t *testing.T) {
	err := fmt.Errorf("lookup: %w", &ErrNotFound{Entity: "profile", ID: "abc"})

	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
	assert.Equal(t, "profile not found with ID: abc", (&ErrNotFound{Entity: "profile", ID: "abc"}).Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("Email is required")

	assert.Equal(t, "validation error: Email is required", err.Error())
	assert.True(t, IsValidationError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsValidationError(errors.New("plain")))
}

func TestPermissionError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewPermissionError("not your client"))
	assert.True(t, IsPermissionError(err))
	assert.Equal(t, "not your client", NewPermissionError("not your client").Error())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := &ProviderError{Provider: "supabase", Operation: "create user", StatusCode: 422, Message: "email exists", Err: cause}

	assert.Equal(t, "supabase create user failed (422): email exists", err.Error())
	assert.ErrorIs(t, err, cause)

	pe, ok := AsProviderError(fmt.Errorf("invite: %w", err))
	assert.True(t, ok)
	assert.Equal(t, 422, pe.StatusCode)

	noStatus := &ProviderError{Provider: "supabase", Operation: "generate link", Message: "unreachable"}
	assert.Equal(t, "supabase generate link failed: unreachable", noStatus.Error())

	_, ok = AsProviderError(errors.New("x"))
	assert.False(t, ok)
}
