package mocks

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/store"
)

// MockUserStore implements store.UserStore for testing. Its default
// behavior is a faithful in-memory store keyed by user ID, so service tests
// can run whole invite/accept/decline scenarios against it; any method can be
// overridden per test through the function fields.
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	SearchFn     func(ctx context.Context, excludeUserID uuid.UUID, filter store.SearchFilter) ([]*domain.User, error)

	// Data for the default implementation
	Users map[uuid.UUID]*domain.User

	// Call tracking
	UpdateCalls []uuid.UUID
	CreateCalls int
}

// Ensure MockUserStore implements store.UserStore
var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates a new mock store with initialized defaults.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[uuid.UUID]*domain.User),
	}
}

// Seed stores the given users directly, bypassing uniqueness checks.
func (m *MockUserStore) Seed(users ...*domain.User) {
	for _, u := range users {
		m.Users[u.ID] = u
	}
}

// Create implements the UserStore interface.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.CreateCalls++
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	for _, existing := range m.Users {
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	m.Users[user.ID] = user
	return nil
}

// GetByID implements the UserStore interface.
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByEmail implements the UserStore interface.
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	for _, user := range m.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements the UserStore interface.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.UpdateCalls = append(m.UpdateCalls, user.ID)
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	if _, ok := m.Users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	m.Users[user.ID] = user
	return nil
}

// Search implements the UserStore interface. The default mirrors the SQL
// implementation's exclusion and name-substring behavior; age filtering is
// left to the caller the same way the service re-checks derived age.
func (m *MockUserStore) Search(
	ctx context.Context,
	excludeUserID uuid.UUID,
	filter store.SearchFilter,
) ([]*domain.User, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, excludeUserID, filter)
	}

	requester, ok := m.Users[excludeUserID]
	if !ok {
		return nil, store.ErrUserNotFound
	}

	excluded := map[uuid.UUID]bool{excludeUserID: true}
	for _, rel := range requester.Friends {
		excluded[rel.UserID] = true
	}

	var results []*domain.User
	for _, user := range m.Users {
		if excluded[user.ID] {
			continue
		}
		if filter.FirstName != nil &&
			!strings.Contains(strings.ToLower(user.FirstName), strings.ToLower(*filter.FirstName)) {
			continue
		}
		if filter.LastName != nil &&
			!strings.Contains(strings.ToLower(user.LastName), strings.ToLower(*filter.LastName)) {
			continue
		}
		results = append(results, user)
	}
	return results, nil
}

// WithTx implements the UserStore interface. The mock has no transaction
// state, so it returns itself.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// MockTransactor implements store.Transactor without a database: the
// function runs with a nil transaction and its error is passed through.
type MockTransactor struct {
	RunCalls int
	Err      error
}

// RunInTransaction implements the store.Transactor interface.
func (m *MockTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.RunCalls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, nil)
}
