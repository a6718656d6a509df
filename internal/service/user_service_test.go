package service_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/mocks"
	"github.com/amityhq/amity-api/internal/service"
	"github.com/amityhq/amity-api/internal/store"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

var testBirthdate = time.Date(1994, 5, 20, 0, 0, 0, 0, time.UTC)

func TestUserServiceRegister(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		transactor := &mocks.MockTransactor{}
		svc := service.NewUserService(userStore, transactor, &mocks.MockPasswordHasher{}, testLogger)

		user, err := svc.Register(
			context.Background(), "ada@example.com", "Ada", "Lovelace", testBirthdate, "s3cret-password")
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, "hashed:s3cret-password", user.HashedPassword)
		assert.Empty(t, user.Friends)
		assert.Empty(t, user.Invitations)
		assert.Equal(t, 1, transactor.RunCalls)

		stored, err := userStore.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, stored)
	})

	t.Run("duplicate email performs no write", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		transactor := &mocks.MockTransactor{}
		svc := service.NewUserService(userStore, transactor, &mocks.MockPasswordHasher{}, testLogger)

		_, err := svc.Register(
			context.Background(), "ada@example.com", "Ada", "Lovelace", testBirthdate, "s3cret-password")
		require.NoError(t, err)

		_, err = svc.Register(
			context.Background(), "ada@example.com", "Grace", "Hopper", testBirthdate, "another-password")
		assert.ErrorIs(t, err, store.ErrEmailExists)

		// Only the first registration touched the store.
		assert.Equal(t, 1, userStore.CreateCalls)
		assert.Len(t, userStore.Users, 1)
	})

	t.Run("invalid profile", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		svc := service.NewUserService(
			userStore, &mocks.MockTransactor{}, &mocks.MockPasswordHasher{}, testLogger)

		_, err := svc.Register(
			context.Background(), "not-an-email", "Ada", "Lovelace", testBirthdate, "s3cret-password")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Zero(t, userStore.CreateCalls)
	})
}

func TestUserServiceGetUser(t *testing.T) {
	userStore := mocks.NewMockUserStore()
	svc := service.NewUserService(
		userStore, &mocks.MockTransactor{}, &mocks.MockPasswordHasher{}, testLogger)

	user, err := domain.NewUser("ada@example.com", "Ada", "Lovelace", testBirthdate)
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	userStore.Seed(user)

	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	other, err := domain.NewUser("x@example.com", "X", "Y", testBirthdate)
	require.NoError(t, err)
	_, err = svc.GetUser(context.Background(), other.ID)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
