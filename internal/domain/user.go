package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyFirstName      = errors.New("first name cannot be empty")
	ErrEmptyLastName       = errors.New("last name cannot be empty")
	ErrEmptyBirthdate      = errors.New("birthdate cannot be empty")
	ErrBirthdateInFuture   = errors.New("birthdate cannot be in the future")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// daysPerYear is the mean Gregorian year length used to derive age from a
// birthdate. Age is floor(days-since-birthdate / 365.25), which keeps the
// value stable across leap years.
const daysPerYear = 365.25

// User is the aggregate root for identity and the friendship graph. The
// Friends and Invitations lists record the two sides of the invitation
// handshake: a sent-but-unresolved invitation lives in the sender's Friends
// list with StatusPending, and in the receiver's Invitations list. Peers are
// referenced by ID only; resolving them to profiles is a read-side concern.
type User struct {
	ID             uuid.UUID      `json:"id"`
	Email          string         `json:"email"`
	HashedPassword string         `json:"-"` // Never expose the password hash
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Birthdate      time.Time      `json:"birthdate"`
	Friends        []Relationship `json:"friends"`
	Invitations    []Relationship `json:"invitations"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewUser creates a new User with the given profile fields, a freshly
// generated ID and empty relationship lists. Returns an error if validation
// fails.
//
// NOTE: The caller is responsible for hashing the user's password and setting
// HashedPassword before the user is stored.
func NewUser(email, firstName, lastName string, birthdate time.Time) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Birthdate:   birthdate,
		Friends:     []Relationship{},
		Invitations: []Relationship{},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.validateProfile(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data, including the stored
// credential. Used when loading or persisting an existing user.
func (u *User) Validate() error {
	if err := u.validateProfile(); err != nil {
		return err
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

// validateProfile checks the identity and profile fields only. A freshly
// constructed user has no hashed password yet, so the credential check is
// kept separate.
func (u *User) validateProfile() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.FirstName == "" {
		return ErrEmptyFirstName
	}

	if u.LastName == "" {
		return ErrEmptyLastName
	}

	if u.Birthdate.IsZero() {
		return ErrEmptyBirthdate
	}

	if u.Birthdate.After(time.Now().UTC()) {
		return ErrBirthdateInFuture
	}

	return nil
}

// Age derives the user's age in whole years from the birthdate. It is a pure
// function of the birthdate and the supplied time, so callers pass the same
// "now" they use elsewhere in the operation and tests stay deterministic.
func (u *User) Age(now time.Time) int {
	days := now.Sub(u.Birthdate).Hours() / 24
	if days < 0 {
		return 0
	}
	return int(days / daysPerYear)
}

// TODO: Replace this basic email validation with a more robust library.
// This implementation is intentionally simple and has limitations.
//
// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}
