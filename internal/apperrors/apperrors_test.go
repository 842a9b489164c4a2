package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{NotFound("Movie not found"), ErrNotFound},
		{PermissionDenied("no"), ErrPermissionDenied},
		{ValidationFailed("bad input"), ErrValidationFailed},
		{Conflict("taken"), ErrConflict},
		{Upload("too big"), ErrUploadError},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}
	assert.NotErrorIs(t, NotFound("x"), ErrConflict)
}

func TestErrorMessageFormatting(t *testing.T) {
	err := Conflict("Username %s is already taken", "alice")
	assert.Equal(t, "Username alice is already taken", err.Error())
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading movie: %w", NotFound("Movie not found"))

	var domainErr *Error
	require.True(t, errors.As(wrapped, &domainErr))
	assert.Equal(t, KindNotFound, domainErr.Kind)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}
