package access

import "context"

// Repository is the persistence contract for the approval registries.
type Repository interface {
	// IsApproved reports whether the user sits in the approved registry.
	IsApproved(ctx context.Context, userID int64) (bool, error)

	// Approve inserts (or refreshes) an approved user.
	Approve(ctx context.Context, user *User) error

	// Revoke removes an approved user; reports whether one was removed.
	Revoke(ctx context.Context, userID int64) (bool, error)

	// ListApproved returns approved users ordered by id.
	ListApproved(ctx context.Context) ([]*User, error)

	// CountApproved returns the size of the approved registry.
	CountApproved(ctx context.Context) (int, error)

	// AddPending files an access request; reports false when the user is
	// already pending.
	AddPending(ctx context.Context, user *PendingUser) (bool, error)

	// GetPending loads one pending request, or [dberr.ErrNoRows].
	GetPending(ctx context.Context, userID int64) (*PendingUser, error)

	// RemovePending drops a pending request; reports whether one existed.
	RemovePending(ctx context.Context, userID int64) (bool, error)

	// ListPending returns pending requests ordered by request time.
	ListPending(ctx context.Context) ([]*PendingUser, error)
}
