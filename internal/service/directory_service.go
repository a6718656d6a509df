package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/store"
)

// DirectoryService provides the user search used to find new friends.
type DirectoryService interface {
	// Search returns users matching the filter, excluding the requester and
	// everyone in the requester's friends list. Returns store.ErrUserNotFound
	// if requesterID does not resolve.
	Search(ctx context.Context, requesterID uuid.UUID, filter store.SearchFilter) ([]*domain.User, error)
}

// DirectoryServiceImpl implements the DirectoryService interface
type DirectoryServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(userStore store.UserStore, logger *slog.Logger) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "directory_service"),
		timeFunc:  time.Now,
	}
}

// Search delegates the exclusion, name matching, and the birthdate range
// derived from the age filter to the store, then re-checks derived-age
// equality in memory. The store's range query is day-granular, so the
// in-memory check guarantees the floor(days/365.25) contract exactly at the
// window's edges.
func (s *DirectoryServiceImpl) Search(
	ctx context.Context,
	requesterID uuid.UUID,
	filter store.SearchFilter,
) ([]*domain.User, error) {
	users, err := s.userStore.Search(ctx, requesterID, filter)
	if err != nil {
		s.logger.Debug("directory search failed",
			"error", err,
			"requester_id", requesterID)
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	if filter.Age == nil {
		return users, nil
	}

	now := s.timeFunc()
	matched := make([]*domain.User, 0, len(users))
	for _, user := range users {
		if user.Age(now) == *filter.Age {
			matched = append(matched, user)
		}
	}

	s.logger.Debug("directory search completed",
		"requester_id", requesterID,
		"age", *filter.Age,
		"candidates", len(users),
		"matched", len(matched))

	return matched, nil
}
