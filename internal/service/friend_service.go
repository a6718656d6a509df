package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/amityhq/amity-api/internal/domain"
	"github.com/amityhq/amity-api/internal/store"
)

// FriendService orchestrates the friendship invitation protocol. Every
// operation loads the two aggregates it touches, delegates the state
// transition to the domain layer, and persists both aggregates within one
// transaction so the symmetric lists can never diverge on a partial write.
type FriendService interface {
	// ListInvitations returns the users whose invitations userID has not yet
	// resolved, in arrival order. Returns store.ErrUserNotFound if userID
	// does not resolve.
	ListInvitations(ctx context.Context, userID uuid.UUID) ([]*domain.User, error)

	// Invite sends a friend invitation from sender to receiver.
	Invite(ctx context.Context, senderID, receiverID uuid.UUID) error

	// Accept resolves a pending invitation from inviter to userID into an
	// accepted friendship on both sides. Returns domain.ErrInvitationNotFound
	// if no such invitation exists.
	Accept(ctx context.Context, userID, inviterID uuid.UUID) error

	// Decline removes a pending invitation from inviter to userID, leaving no
	// trace on either side. Declining an absent invitation is a no-op.
	Decline(ctx context.Context, userID, inviterID uuid.UUID) error
}

// FriendServiceImpl implements the FriendService interface
type FriendServiceImpl struct {
	userStore  store.UserStore
	transactor store.Transactor
	logger     *slog.Logger
}

// NewFriendService creates a new FriendService
func NewFriendService(
	userStore store.UserStore,
	transactor store.Transactor,
	logger *slog.Logger,
) *FriendServiceImpl {
	return &FriendServiceImpl{
		userStore:  userStore,
		transactor: transactor,
		logger:     logger.With("component", "friend_service"),
	}
}

// ListInvitations resolves the pending inviter IDs to full profiles.
func (s *FriendServiceImpl) ListInvitations(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		s.logger.Debug("failed to load user for invitation listing",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	inviterIDs := user.PendingInviterIDs()
	inviters := make([]*domain.User, 0, len(inviterIDs))
	for _, id := range inviterIDs {
		inviter, err := s.userStore.GetByID(ctx, id)
		if err != nil {
			// An inviter referenced by a stored invitation should exist;
			// surface the inconsistency instead of hiding the entry.
			s.logger.Error("invitation references unknown user",
				"error", err,
				"user_id", userID,
				"inviter_id", id)
			return nil, fmt.Errorf("failed to list invitations: %w", err)
		}
		inviters = append(inviters, inviter)
	}

	return inviters, nil
}

// Invite sends a friend invitation from sender to receiver and persists both
// mutated aggregates in one transaction.
func (s *FriendServiceImpl) Invite(ctx context.Context, senderID, receiverID uuid.UUID) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		sender, receiver, err := s.loadPair(ctx, txStore, senderID, receiverID)
		if err != nil {
			return err
		}

		if err := sender.InviteFriend(receiver); err != nil {
			return err
		}

		return s.savePair(ctx, txStore, sender, receiver)
	})

	if err != nil {
		s.logFriendshipFailure("invite", err, senderID, receiverID)
		return fmt.Errorf("failed to send friend invitation: %w", err)
	}

	s.logger.Info("friend invitation sent",
		"sender_id", senderID,
		"receiver_id", receiverID)
	return nil
}

// Accept resolves a pending invitation into an accepted friendship.
func (s *FriendServiceImpl) Accept(ctx context.Context, userID, inviterID uuid.UUID) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, inviter, err := s.loadPair(ctx, txStore, userID, inviterID)
		if err != nil {
			return err
		}

		if err := user.AcceptFriendship(inviter); err != nil {
			return err
		}

		return s.savePair(ctx, txStore, user, inviter)
	})

	if err != nil {
		s.logFriendshipFailure("accept", err, userID, inviterID)
		return fmt.Errorf("failed to accept friendship: %w", err)
	}

	s.logger.Info("friendship accepted",
		"user_id", userID,
		"inviter_id", inviterID)
	return nil
}

// Decline removes a pending invitation from both sides.
func (s *FriendServiceImpl) Decline(ctx context.Context, userID, inviterID uuid.UUID) error {
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, inviter, err := s.loadPair(ctx, txStore, userID, inviterID)
		if err != nil {
			return err
		}

		user.DeclineFriendship(inviter)

		return s.savePair(ctx, txStore, user, inviter)
	})

	if err != nil {
		s.logFriendshipFailure("decline", err, userID, inviterID)
		return fmt.Errorf("failed to decline friendship: %w", err)
	}

	s.logger.Info("friendship declined",
		"user_id", userID,
		"inviter_id", inviterID)
	return nil
}

// loadPair fetches both aggregates of a friendship operation.
func (s *FriendServiceImpl) loadPair(
	ctx context.Context,
	txStore store.UserStore,
	firstID, secondID uuid.UUID,
) (*domain.User, *domain.User, error) {
	first, err := txStore.GetByID(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}

	second, err := txStore.GetByID(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

// savePair persists both mutated aggregates within the current transaction.
func (s *FriendServiceImpl) savePair(
	ctx context.Context,
	txStore store.UserStore,
	first, second *domain.User,
) error {
	if err := txStore.Update(ctx, first); err != nil {
		return err
	}
	return txStore.Update(ctx, second)
}

// logFriendshipFailure logs expected domain rejections at debug and
// everything else at error.
func (s *FriendServiceImpl) logFriendshipFailure(op string, err error, userID, peerID uuid.UUID) {
	switch {
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, domain.ErrSelfFriendship),
		errors.Is(err, domain.ErrRelationshipExists),
		errors.Is(err, domain.ErrInvitationNotFound):
		s.logger.Debug("friendship operation rejected",
			"operation", op,
			"error", err,
			"user_id", userID,
			"peer_id", peerID)
	default:
		s.logger.Error("friendship operation failed",
			"operation", op,
			"error", err,
			"user_id", userID,
			"peer_id", peerID)
	}
}
