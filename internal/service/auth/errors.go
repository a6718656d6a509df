// Package auth provides credential hashing and token issuance for the
// application's authentication flows.
package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidCredentials indicates the email/password pair did not match a
	// stored credential. Callers must not distinguish between an unknown email
	// and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)
