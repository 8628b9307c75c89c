package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{InvalidTransition("Completed", "Scheduled"), http.StatusBadRequest},
		{Unauthenticated(""), http.StatusUnauthorized},
		{Forbidden(""), http.StatusForbidden},
		{NotFound("pet"), http.StatusNotFound},
		{Conflict("email already registered"), http.StatusConflict},
		{Internal(fmt.Errorf("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := InvalidTransition("Cancelled", "Completed")
	assert.Equal(t, "cannot change appointment status from Cancelled to Completed", err.Message)
	assert.Equal(t, CodeInvalidTransition, err.Code)
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	appErr := From(cause)
	assert.Equal(t, CodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, cause)
}

func TestFromPreservesAppErrors(t *testing.T) {
	orig := NotFound("clinic")
	wrapped := fmt.Errorf("loading: %w", orig)
	assert.Equal(t, orig, From(wrapped))
}

func TestIsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", Forbidden(""))
	assert.True(t, IsCode(err, CodeForbidden))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(fmt.Errorf("plain"), CodeForbidden))
}
