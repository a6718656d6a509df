package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/platform/logger"
	"github.com/amityhq/amity-api/internal/store"
)

// Relationship list discriminators in the user_relationships table.
const (
	listFriends     = "friend"
	listInvitations = "invitation"
)

// daysPerYear mirrors the domain's derived-age constant; the store uses it to
// translate an exact-age filter into a birthdate range.
const daysPerYear = 365.25

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user aggregate, handling domain validation.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, hashed_password, first_name, last_name, birthdate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.FirstName,
		user.LastName,
		user.Birthdate,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists",
				slog.String("email", user.Email))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := s.saveRelationships(ctx, user); err != nil {
		log.Error("failed to save relationships during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))
	return nil
}

// GetByID implements store.UserStore.GetByID
// It retrieves the full aggregate: the user row plus both relationship lists
// in insertion order. Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, first_name, last_name, birthdate, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return s.getUser(ctx, query, id)
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, hashed_password, first_name, last_name, birthdate, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return s.getUser(ctx, query, email)
}

// getUser runs a single-row user query and loads the relationship lists.
func (s *PostgresUserStore) getUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.FirstName,
		&user.LastName,
		&user.Birthdate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	if err := s.loadRelationships(ctx, &user); err != nil {
		log.Error("failed to load relationships",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return nil, err
	}

	return &user, nil
}

// Update implements store.UserStore.Update
// It persists the full aggregate: the user row and a replacement of its
// relationship rows. Returns store.ErrUserNotFound if the user does not exist
// and store.ErrEmailExists if updating to an email that is already taken.
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users
		SET email = $2, hashed_password = $3, first_name = $4, last_name = $5,
		    birthdate = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.FirstName,
		user.LastName,
		user.Birthdate,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("email already exists",
				slog.String("email", user.Email))
			return store.ErrEmailExists
		}

		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return store.ErrUserNotFound
	}

	// Replace the relationship rows wholesale; the aggregate's in-memory
	// lists are the source of truth.
	deleteQuery := `DELETE FROM user_relationships WHERE user_id = $1`
	if _, err := s.db.ExecContext(ctx, deleteQuery, user.ID); err != nil {
		log.Error("failed to clear relationships",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	if err := s.saveRelationships(ctx, user); err != nil {
		log.Error("failed to save relationships",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	log.Debug("user updated successfully",
		slog.String("user_id", user.ID.String()))
	return nil
}

// Search implements store.UserStore.Search
// It excludes the requesting user and every peer in that user's friends list,
// applies case-insensitive substring matching to the name filters, and
// translates an exact-age filter into a birthdate range (the derived age is a
// floor over 365.25-day years, so equality at the storage layer would be
// wrong). Relationship lists are not populated on the returned users; search
// results feed profile views only.
func (s *PostgresUserStore) Search(
	ctx context.Context,
	excludeUserID uuid.UUID,
	filter store.SearchFilter,
) ([]*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// The requester must resolve before anything else, both for the error
	// contract and to keep the exclusion subquery meaningful.
	var exists bool
	existsQuery := `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	if err := s.db.QueryRowContext(ctx, existsQuery, excludeUserID).Scan(&exists); err != nil {
		log.Error("failed to check requester existence",
			slog.String("error", err.Error()),
			slog.String("user_id", excludeUserID.String()))
		return nil, MapError(err)
	}
	if !exists {
		return nil, store.ErrUserNotFound
	}

	var birthdateAfter, birthdateUntil sql.NullTime
	if filter.Age != nil {
		after, until := BirthdateRangeForAge(*filter.Age, time.Now().UTC())
		birthdateAfter = sql.NullTime{Time: after, Valid: true}
		birthdateUntil = sql.NullTime{Time: until, Valid: true}
	}

	var firstName, lastName sql.NullString
	if filter.FirstName != nil {
		firstName = sql.NullString{String: *filter.FirstName, Valid: true}
	}
	if filter.LastName != nil {
		lastName = sql.NullString{String: *filter.LastName, Valid: true}
	}

	query := `
		SELECT id, email, hashed_password, first_name, last_name, birthdate, created_at, updated_at
		FROM users
		WHERE id <> $1
		  AND id NOT IN (
			SELECT peer_id FROM user_relationships
			WHERE user_id = $1 AND list = 'friend'
		  )
		  AND ($2::text IS NULL OR first_name ILIKE '%' || $2 || '%')
		  AND ($3::text IS NULL OR last_name ILIKE '%' || $3 || '%')
		  AND ($4::timestamptz IS NULL OR (birthdate > $4 AND birthdate <= $5))
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query,
		excludeUserID, firstName, lastName, birthdateAfter, birthdateUntil)
	if err != nil {
		log.Error("failed to search users",
			slog.String("error", err.Error()),
			slog.String("user_id", excludeUserID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.HashedPassword,
			&user.FirstName,
			&user.LastName,
			&user.Birthdate,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return users, nil
}

// BirthdateRangeForAge converts an exact derived age into the birthdate
// window it corresponds to: anyone born after the lower bound (exclusive) and
// up to the upper bound (inclusive) has exactly that age under the
// floor(days/365.25) derivation.
func BirthdateRangeForAge(age int, now time.Time) (after, until time.Time) {
	dayLength := 24 * time.Hour
	until = now.Add(-time.Duration(float64(age) * daysPerYear * float64(dayLength)))
	after = now.Add(-time.Duration(float64(age+1) * daysPerYear * float64(dayLength)))
	return after, until
}

// loadRelationships populates both relationship lists in insertion order.
func (s *PostgresUserStore) loadRelationships(ctx context.Context, user *domain.User) error {
	query := `
		SELECT peer_id, list, status
		FROM user_relationships
		WHERE user_id = $1
		ORDER BY position
	`
	rows, err := s.db.QueryContext(ctx, query, user.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	user.Friends = []domain.Relationship{}
	user.Invitations = []domain.Relationship{}

	for rows.Next() {
		var (
			peerID uuid.UUID
			list   string
			status string
		)
		if err := rows.Scan(&peerID, &list, &status); err != nil {
			return MapError(err)
		}

		rel := domain.Relationship{UserID: peerID, Status: domain.FriendshipStatus(status)}
		switch list {
		case listFriends:
			user.Friends = append(user.Friends, rel)
		case listInvitations:
			user.Invitations = append(user.Invitations, rel)
		default:
			return fmt.Errorf("%w: unknown relationship list %q", store.ErrInvalidEntity, list)
		}
	}

	return rows.Err()
}

// saveRelationships inserts the aggregate's current relationship rows. The
// caller is responsible for clearing stale rows first (see Update).
func (s *PostgresUserStore) saveRelationships(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO user_relationships (user_id, peer_id, list, status, position)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, rel := range user.Friends {
		if _, err := s.db.ExecContext(ctx, query,
			user.ID, rel.UserID, listFriends, string(rel.Status), i); err != nil {
			return MapError(err)
		}
	}

	for i, rel := range user.Invitations {
		if _, err := s.db.ExecContext(ctx, query,
			user.ID, rel.UserID, listInvitations, string(rel.Status), i); err != nil {
			return MapError(err)
		}
	}

	return nil
}
