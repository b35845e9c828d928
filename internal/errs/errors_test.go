package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil is ok", nil, http.StatusOK},
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"service not found", ErrServiceNotFound, http.StatusNotFound},
		{"email taken", ErrEmailTaken, http.StatusConflict},
		{"service exists", ErrServiceExists, http.StatusConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"unknown error is internal", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel keeps status", fmt.Errorf("storage.GetUser: %w", ErrUserNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "user not found", Message(fmt.Errorf("storage.GetUser: %w", ErrUserNotFound)))
	assert.Equal(t, "email is already in use", Message(ErrEmailTaken))
	// Технические детали не просачиваются наружу
	assert.Equal(t, "internal error", Message(errors.New("pq: connection refused")))
}
