package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrSelfFriendship is returned when a user attempts to invite themselves.
	ErrSelfFriendship = errors.New("cannot create a friendship with yourself")

	// ErrRelationshipExists is returned when an invitation is sent to a user
	// with whom a pending or accepted relationship already exists, in either
	// direction.
	ErrRelationshipExists = errors.New("relationship already exists")

	// ErrInvitationNotFound is returned when accepting a friendship for which
	// no pending invitation exists. Declining, by contrast, is an idempotent
	// removal and never produces this error.
	ErrInvitationNotFound = errors.New("no pending invitation from this user")
)

// ValidationError carries the field that failed validation alongside the
// underlying sentinel error, so transport layers can build precise messages
// without string matching.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
