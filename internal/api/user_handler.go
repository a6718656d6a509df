package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amityhq/amity-api/internal/api/shared"
	"github.com/amityhq/amity-api/internal/service"
	"github.com/amityhq/amity-api/internal/store"
)

// UserHandler handles user directory HTTP requests.
type UserHandler struct {
	directoryService service.DirectoryService
	validator        *validator.Validate
	timeFunc         func() time.Time // Injectable for testing
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(directoryService service.DirectoryService) *UserHandler {
	return &UserHandler{
		directoryService: directoryService,
		validator:        validator.New(),
		timeFunc:         time.Now,
	}
}

// Search handles POST /api/users/search requests. Results never include the
// caller or anyone already on the caller's friends list.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req SearchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	users, err := h.directoryService.Search(r.Context(), userID, store.SearchFilter{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Age:       req.Age,
	})
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

	shared.RespondWithJSON(w, r, http.StatusOK, usersToProfileResponses(users, h.timeFunc()))
}
