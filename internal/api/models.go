package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
)

// Common request/response structures

// birthdateLayout is the wire format for birthdates in requests and responses.
const birthdateLayout = "2006-01-02"

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=100"`
	Birthdate string `json:"birthdate"  validate:"required,datetime=2006-01-02"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// SearchRequest defines the payload for the user search endpoint. All fields
// are optional; absent fields do not constrain the search.
type SearchRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1,max=100"`
	Age       *int    `json:"age"        validate:"omitempty,min=0,max=150"`
}

// UserProfileResponse is the public projection of a user returned by the
// invitation listing and search endpoints. Password material and relationship
// lists are never exposed.
type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Birthdate string    `json:"birthdate"`
	Age       int       `json:"age"`
}

// StatusResponse is the minimal body returned by friendship state transitions.
type StatusResponse struct {
	Status string `json:"status"`
}

// userToProfileResponse converts a domain.User to its public projection,
// deriving the age at the given instant.
func userToProfileResponse(user *domain.User, now time.Time) UserProfileResponse {
	return UserProfileResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Birthdate: user.Birthdate.Format(birthdateLayout),
		Age:       user.Age(now),
	}
}

// usersToProfileResponses converts a slice of users, preserving order.
func usersToProfileResponses(users []*domain.User, now time.Time) []UserProfileResponse {
	profiles := make([]UserProfileResponse, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, userToProfileResponse(user, now))
	}
	return profiles
}
