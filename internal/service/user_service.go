package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/service/auth"
	"github.com/amityhq/amity-api/internal/store"
)

// UserService provides user registration and retrieval.
type UserService interface {
	// Register creates a new user with the given profile and password.
	// Returns store.ErrEmailExists (without writing anything) if the email is
	// already registered, or a domain validation error for bad input.
	Register(
		ctx context.Context,
		email, firstName, lastName string,
		birthdate time.Time,
		password string,
	) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	hasher     auth.PasswordHasher
	logger     *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore store.UserStore,
	transactor store.Transactor,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserServiceImpl {
	return &UserServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		hasher:     hasher,
		logger:     logger.With("component", "user_service"),
	}
}

// Register creates, hashes credentials for, and persists a new user.
// The duplicate-email check runs before any write, so a conflicting
// registration never touches the store.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, firstName, lastName string,
	birthdate time.Time,
	password string,
) (*domain.User, error) {
	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		s.logger.Debug("attempted to register with existing email",
			"email", email)
		return nil, fmt.Errorf("failed to register user: %w", store.ErrEmailExists)
	} else if !errors.Is(err, store.ErrUserNotFound) {
		s.logger.Error("failed to check email availability",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user, err := domain.NewUser(email, firstName, lastName, birthdate)
	if err != nil {
		s.logger.Debug("failed to create user object",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"user_id", user.ID)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.HashedPassword = hashed

	err = s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email",
				"email", email)
		} else {
			s.logger.Error("failed to save user",
				"error", err,
				"email", email)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email)

	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("user not found", "user_id", userID)
		} else {
			s.logger.Error("failed to retrieve user",
				"error", err,
				"user_id", userID)
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user, nil
}
