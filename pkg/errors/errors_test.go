package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
	}{
		{NotFound("patient", nil), http.StatusNotFound},
		{Validation("bad input", nil), http.StatusBadRequest},
		{State("wrong stage"), http.StatusConflict},
		{Backend(errors.New("db down")), http.StatusBadGateway},
		{Unauthorized(errors.New("bad token")), http.StatusUnauthorized},
		{Forbidden("admins only"), http.StatusForbidden},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.StatusCode())
	}
}

func TestCodePredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NotFound("patient", nil))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsState(wrapped))

	assert.True(t, IsState(State("conflict")))
	assert.True(t, IsValidation(Validation("nope", nil)))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("patient", cause)
	assert.Contains(t, err.Error(), "patient not found")
	assert.Contains(t, err.Error(), "row missing")
	assert.Equal(t, cause, errors.Unwrap(err))
}
