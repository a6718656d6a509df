package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/mocks"
	"github.com/amityhq/amity-api/internal/store"
)

var quietLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func seedDirectoryUser(
	t *testing.T,
	userStore *mocks.MockUserStore,
	email, firstName, lastName string,
	birthdate time.Time,
) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, firstName, lastName, birthdate)
	require.NoError(t, err)
	u.HashedPassword = "hashed"
	userStore.Seed(u)
	return u
}

func TestDirectorySearch(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	birthdate := now.AddDate(-30, 0, -10) // derived age 30

	t.Run("filters by name and age", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		requester := seedDirectoryUser(t, userStore, "req@example.com", "Req", "User", birthdate)
		match := seedDirectoryUser(t, userStore, "m@example.com", "Annabel", "Stone", birthdate)
		seedDirectoryUser(t, userStore, "wrongname@example.com", "Boris", "Stone", birthdate)
		seedDirectoryUser(t, userStore, "wrongage@example.com", "Annika", "Stonebridge", now.AddDate(-40, 0, -10))

		svc := NewDirectoryService(userStore, quietLogger)
		svc.timeFunc = func() time.Time { return now }

		first := "anna"
		last := "stone"
		age := 30
		results, err := svc.Search(context.Background(), requester.ID,
			store.SearchFilter{FirstName: &first, LastName: &last, Age: &age})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, match.ID, results[0].ID)
	})

	t.Run("excludes requester and current friends", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		requester := seedDirectoryUser(t, userStore, "req@example.com", "Req", "User", birthdate)
		friend := seedDirectoryUser(t, userStore, "friend@example.com", "Friendly", "Match", birthdate)
		stranger := seedDirectoryUser(t, userStore, "stranger@example.com", "Strange", "Match", birthdate)

		// Make requester and friend accepted friends.
		require.NoError(t, requester.InviteFriend(friend))
		require.NoError(t, friend.AcceptFriendship(requester))

		svc := NewDirectoryService(userStore, quietLogger)
		svc.timeFunc = func() time.Time { return now }

		last := "match"
		results, err := svc.Search(context.Background(), requester.ID,
			store.SearchFilter{LastName: &last})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, stranger.ID, results[0].ID)
	})

	t.Run("age boundary uses the derived value, not calendar years", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		requester := seedDirectoryUser(t, userStore, "req@example.com", "Req", "User", birthdate)
		// 26 years and 3 days of elapsed days: derived age 26.
		match := seedDirectoryUser(t, userStore, "m@example.com", "Young", "One", now.AddDate(-26, 0, -3))
		// 364 days short of 26 derived years.
		seedDirectoryUser(t, userStore, "n@example.com", "Younger", "One", now.AddDate(-25, 0, -300))

		svc := NewDirectoryService(userStore, quietLogger)
		svc.timeFunc = func() time.Time { return now }

		age := 26
		results, err := svc.Search(context.Background(), requester.ID, store.SearchFilter{Age: &age})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, match.ID, results[0].ID)
	})

	t.Run("unknown requester", func(t *testing.T) {
		userStore := mocks.NewMockUserStore()
		svc := NewDirectoryService(userStore, quietLogger)

		_, err := svc.Search(context.Background(), uuid.New(), store.SearchFilter{})
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}
