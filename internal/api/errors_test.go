package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/service/auth"
	"github.com/amityhq/amity-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"invitation not found", domain.ErrInvitationNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"relationship exists", domain.ErrRelationshipExists, http.StatusConflict},
		{"self friendship", domain.ErrSelfFriendship, http.StatusBadRequest},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{
			"wrapped user not found",
			fmt.Errorf("failed to accept friendship: %w", store.ErrUserNotFound),
			http.StatusNotFound,
		},
		{
			"wrapped relationship exists",
			fmt.Errorf("failed to send friend invitation: %w", domain.ErrRelationshipExists),
			http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known sentinels get friendly messages", func(t *testing.T) {
		assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "Relationship already exists", GetSafeErrorMessage(domain.ErrRelationshipExists))
		assert.Equal(t,
			"No pending invitation from this user",
			GetSafeErrorMessage(domain.ErrInvitationNotFound))
	})

	t.Run("validation errors name the field", func(t *testing.T) {
		err := domain.NewValidationError("email", "has invalid format", domain.ErrValidation)
		assert.Equal(t, "Invalid email", GetSafeErrorMessage(err))
	})

	t.Run("unknown errors never leak details", func(t *testing.T) {
		err := errors.New("pq: connection refused host=10.0.0.5")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
		assert.NotContains(t, msg, "10.0.0.5")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
