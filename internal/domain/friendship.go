package domain

import "github.com/google/uuid"

// FriendshipStatus describes the state of one relationship entry.
type FriendshipStatus string

const (
	// StatusPending marks a sent-but-unresolved invitation.
	StatusPending FriendshipStatus = "pending"

	// StatusAccepted marks a confirmed friendship. Accepted entries must be
	// mirrored on both users' Friends lists.
	StatusAccepted FriendshipStatus = "accepted"
)

// Relationship is one entry in a user's Friends or Invitations list. The peer
// is referenced by ID only, never by an owning pointer, to keep aggregates
// independent.
type Relationship struct {
	UserID uuid.UUID        `json:"user_id"`
	Status FriendshipStatus `json:"status"`
}

// InviteFriend records a friend invitation from u to receiver. The pending
// link is written to both aggregates: u's Friends list and receiver's
// Invitations list. The caller owns persisting both users afterwards.
//
// The operation is rejected with ErrSelfFriendship for a self-invite and with
// ErrRelationshipExists if any entry for the pair already exists in either
// direction.
func (u *User) InviteFriend(receiver *User) error {
	if receiver == nil {
		return ErrInvalidID
	}

	if u.ID == receiver.ID {
		return ErrSelfFriendship
	}

	if u.hasRelationshipWith(receiver.ID) || receiver.hasRelationshipWith(u.ID) {
		return ErrRelationshipExists
	}

	u.Friends = append(u.Friends, Relationship{UserID: receiver.ID, Status: StatusPending})
	receiver.Invitations = append(receiver.Invitations, Relationship{UserID: u.ID, Status: StatusPending})

	return nil
}

// AcceptFriendship resolves a pending invitation from inviter to u. The
// invitation entry is removed from u's Invitations list, an accepted entry is
// appended to u's Friends list, and the inviter's pending entry is replaced
// by an accepted one, leaving both aggregates mutually consistent.
//
// Returns ErrInvitationNotFound if u has no pending invitation from inviter.
func (u *User) AcceptFriendship(inviter *User) error {
	if inviter == nil {
		return ErrInvalidID
	}

	idx := indexOf(u.Invitations, inviter.ID)
	if idx == -1 {
		return ErrInvitationNotFound
	}

	u.Invitations = append(u.Invitations[:idx], u.Invitations[idx+1:]...)
	u.Friends = append(u.Friends, Relationship{UserID: inviter.ID, Status: StatusAccepted})

	// Replace the inviter's pending entry in place of the old one.
	if inviterIdx := indexOf(inviter.Friends, u.ID); inviterIdx != -1 {
		inviter.Friends = append(inviter.Friends[:inviterIdx], inviter.Friends[inviterIdx+1:]...)
	}
	inviter.Friends = append(inviter.Friends, Relationship{UserID: u.ID, Status: StatusAccepted})

	return nil
}

// DeclineFriendship removes any invitation from inviter to u along with the
// inviter's matching pending entry. Declined invitations leave no trace on
// either side. The removal is filter-based and idempotent: declining a pair
// with no pending invitation is a no-op.
func (u *User) DeclineFriendship(inviter *User) {
	if inviter == nil {
		return
	}

	u.Invitations = removeAll(u.Invitations, inviter.ID)
	inviter.Friends = removeAll(inviter.Friends, u.ID)
}

// IsFriendOf reports whether u has an accepted friendship with the given peer.
func (u *User) IsFriendOf(peerID uuid.UUID) bool {
	for _, rel := range u.Friends {
		if rel.UserID == peerID && rel.Status == StatusAccepted {
			return true
		}
	}
	return false
}

// PendingInviterIDs returns the IDs of users whose invitations u has not yet
// resolved, in the order the invitations arrived.
func (u *User) PendingInviterIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(u.Invitations))
	for _, rel := range u.Invitations {
		if rel.Status == StatusPending {
			ids = append(ids, rel.UserID)
		}
	}
	return ids
}

// hasRelationshipWith reports whether any entry referencing peerID exists in
// either of u's lists, regardless of status.
func (u *User) hasRelationshipWith(peerID uuid.UUID) bool {
	return indexOf(u.Friends, peerID) != -1 || indexOf(u.Invitations, peerID) != -1
}

func indexOf(rels []Relationship, peerID uuid.UUID) int {
	for i, rel := range rels {
		if rel.UserID == peerID {
			return i
		}
	}
	return -1
}

func removeAll(rels []Relationship, peerID uuid.UUID) []Relationship {
	filtered := rels[:0]
	for _, rel := range rels {
		if rel.UserID != peerID {
			filtered = append(filtered, rel)
		}
	}
	return filtered
}
