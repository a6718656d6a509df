package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amityhq/amity-api/internal/api/shared"
	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/mocks"
	"github.com/amityhq/amity-api/internal/service"
)

// friendTestEnv wires a FriendHandler to an in-memory store behind the real
// service so handler tests exercise whole state transitions.
type friendTestEnv struct {
	store   *mocks.MockUserStore
	handler *FriendHandler
	alice   *domain.User
	bob     *domain.User
}

func newFriendTestEnv(t *testing.T) *friendTestEnv {
	t.Helper()

	userStore := mocks.NewMockUserStore()

	alice, err := domain.NewUser(
		"alice@example.com",
		"Alice",
		"Archer",
		time.Date(1992, 6, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	alice.HashedPassword = "hashed"

	bob, err := domain.NewUser(
		"bob@example.com",
		"Bob",
		"Baker",
		time.Date(1988, 2, 20, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	bob.HashedPassword = "hashed"

	userStore.Seed(alice, bob)

	friendService := service.NewFriendService(userStore, &mocks.MockTransactor{}, testLogger())

	return &friendTestEnv{
		store:   userStore,
		handler: NewFriendHandler(friendService),
		alice:   alice,
		bob:     bob,
	}
}

// router mounts the friendship routes with the given user injected as the
// authenticated caller.
func (e *friendTestEnv) router(callerID uuid.UUID) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), shared.UserIDContextKey, callerID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/api/friends/invitations", e.handler.ListInvitations)
	r.Post("/api/friends/invite/{receiverID}", e.handler.Invite)
	r.Post("/api/friends/accept/{inviterID}", e.handler.Accept)
	r.Post("/api/friends/decline/{inviterID}", e.handler.Decline)
	return r
}

func doRequest(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestFriendHandler_Invite(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		env := newFriendTestEnv(t)
		router := env.router(env.alice.ID)

		recorder := doRequest(router, "POST", "/api/friends/invite/"+env.bob.ID.String())

		assert.Equal(t, http.StatusCreated, recorder.Code)
		require.Len(t, env.alice.Friends, 1)
		assert.Equal(t, env.bob.ID, env.alice.Friends[0].UserID)
		assert.Equal(t, domain.StatusPending, env.alice.Friends[0].Status)
		assert.Equal(t, []uuid.UUID{env.alice.ID}, env.bob.PendingInviterIDs())
	})

	t.Run("self invitation", func(t *testing.T) {
		env := newFriendTestEnv(t)
		router := env.router(env.alice.ID)

		recorder := doRequest(router, "POST", "/api/friends/invite/"+env.alice.ID.String())

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("duplicate invitation", func(t *testing.T) {
		env := newFriendTestEnv(t)
		router := env.router(env.alice.ID)

		recorder := doRequest(router, "POST", "/api/friends/invite/"+env.bob.ID.String())
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder = doRequest(router, "POST", "/api/friends/invite/"+env.bob.ID.String())
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("unknown receiver", func(t *testing.T) {
		env := newFriendTestEnv(t)
		router := env.router(env.alice.ID)

		recorder := doRequest(router, "POST", "/api/friends/invite/"+uuid.NewString())

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("malformed receiver ID", func(t *testing.T) {
		env := newFriendTestEnv(t)
		router := env.router(env.alice.ID)

		recorder := doRequest(router, "POST", "/api/friends/invite/not-a-uuid")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestFriendHandler_Accept(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		env := newFriendTestEnv(t)
		require.NoError(t, env.alice.InviteFriend(env.bob))

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "POST", "/api/friends/accept/"+env.alice.ID.String())

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.True(t, env.bob.IsFriendOf(env.alice.ID))
		assert.True(t, env.alice.IsFriendOf(env.bob.ID))
		assert.Empty(t, env.bob.Invitations)
	})

	t.Run("no pending invitation", func(t *testing.T) {
		env := newFriendTestEnv(t)

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "POST", "/api/friends/accept/"+env.alice.ID.String())

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestFriendHandler_Decline(t *testing.T) {
	t.Parallel()

	t.Run("removes invitation from both sides", func(t *testing.T) {
		env := newFriendTestEnv(t)
		require.NoError(t, env.alice.InviteFriend(env.bob))

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "POST", "/api/friends/decline/"+env.alice.ID.String())

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, env.bob.Invitations)
		assert.Empty(t, env.alice.Friends)
	})

	t.Run("idempotent", func(t *testing.T) {
		env := newFriendTestEnv(t)
		require.NoError(t, env.alice.InviteFriend(env.bob))

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "POST", "/api/friends/decline/"+env.alice.ID.String())
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = doRequest(router, "POST", "/api/friends/decline/"+env.alice.ID.String())
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestFriendHandler_ListInvitations(t *testing.T) {
	t.Parallel()

	t.Run("returns pending inviter profiles", func(t *testing.T) {
		env := newFriendTestEnv(t)
		require.NoError(t, env.alice.InviteFriend(env.bob))

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "GET", "/api/friends/invitations")

		require.Equal(t, http.StatusOK, recorder.Code)

		var profiles []UserProfileResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&profiles))
		require.Len(t, profiles, 1)
		assert.Equal(t, env.alice.ID, profiles[0].ID)
		assert.Equal(t, "Alice", profiles[0].FirstName)
		assert.Equal(t, "1992-06-01", profiles[0].Birthdate)
	})

	t.Run("empty when no invitations", func(t *testing.T) {
		env := newFriendTestEnv(t)

		router := env.router(env.bob.ID)
		recorder := doRequest(router, "GET", "/api/friends/invitations")

		require.Equal(t, http.StatusOK, recorder.Code)

		var profiles []UserProfileResponse
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&profiles))
		assert.Empty(t, profiles)
	})

	t.Run("missing authentication", func(t *testing.T) {
		env := newFriendTestEnv(t)

		router := env.router(uuid.Nil)
		recorder := doRequest(router, "GET", "/api/friends/invitations")

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}
