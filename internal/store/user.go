package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
)

// SearchFilter holds the optional directory search criteria. Nil fields match
// unconditionally. Name filters are case-insensitive substring matches; Age is
// an exact derived-age match, which the store translates into a birthdate
// range rather than an equality comparison.
type SearchFilter struct {
	FirstName *string
	LastName  *string
	Age       *int
}

// UserStore defines the interface for user data persistence. A User is
// persisted as one aggregate: the user row plus both relationship lists.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, with both relationship
	// lists populated in insertion order.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update persists the full aggregate: the user row and a replacement of
	// its relationship rows. Returns ErrUserNotFound if the user does not
	// exist and ErrEmailExists if updating to an email that is already taken.
	Update(ctx context.Context, user *domain.User) error

	// Search returns users matching the filter, excluding the user with
	// excludeUserID and every peer present in that user's Friends list.
	// Returns ErrUserNotFound if excludeUserID does not resolve.
	Search(ctx context.Context, excludeUserID uuid.UUID, filter SearchFilter) ([]*domain.User, error)

	// WithTx returns a new UserStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
