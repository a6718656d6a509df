package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/api/shared"
	"github.com/amityhq/amity-api/internal/service"
)

// FriendHandler handles friendship-related HTTP requests.
type FriendHandler struct {
	friendService service.FriendService
	timeFunc      func() time.Time // Injectable for testing
}

// NewFriendHandler creates a new FriendHandler.
func NewFriendHandler(friendService service.FriendService) *FriendHandler {
	return &FriendHandler{
		friendService: friendService,
		timeFunc:      time.Now,
	}
}

// ListInvitations handles GET /api/friends/invitations requests. It returns
// the public profiles of users whose invitations the caller has not yet
// resolved, in arrival order.
func (h *FriendHandler) ListInvitations(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	inviters, err := h.friendService.ListInvitations(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w,
			r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, usersToProfileResponses(inviters, h.timeFunc()))
}

// Invite handles POST /api/friends/invite/{receiverID} requests.
func (h *FriendHandler) Invite(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	receiverID, ok := parsePeerID(w, r, "receiverID")
	if !ok {
		return
	}

	if err := h.friendService.Invite(r.Context(), userID, receiverID); err != nil {
		shared.RespondWithErrorAndLog(
			w,
			r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, StatusResponse{Status: "invitation sent"})
}

// Accept handles POST /api/friends/accept/{inviterID} requests.
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	inviterID, ok := parsePeerID(w, r, "inviterID")
	if !ok {
		return
	}

	if err := h.friendService.Accept(r.Context(), userID, inviterID); err != nil {
		shared.RespondWithErrorAndLog(
			w,
			r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "invitation accepted"})
}

// Decline handles POST /api/friends/decline/{inviterID} requests. Declining
// an invitation that does not exist still succeeds.
func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	inviterID, ok := parsePeerID(w, r, "inviterID")
	if !ok {
		return
	}

	if err := h.friendService.Decline(r.Context(), userID, inviterID); err != nil {
		shared.RespondWithErrorAndLog(
			w,
			r,
			MapErrorToStatusCode(err),
			GetSafeErrorMessage(err),
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StatusResponse{Status: "invitation declined"})
}

// authenticatedUserID extracts the user ID placed in the context by the auth
// middleware.
func authenticatedUserID(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// parsePeerID parses the named URL parameter as a UUID, writing a 400
// response on failure.
func parsePeerID(w http.ResponseWriter, r *http.Request, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return uuid.Nil, false
	}
	return id, true
}
