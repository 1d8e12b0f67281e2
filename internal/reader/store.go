package reader

import "context"

// Repository is the persistence contract for reading sessions.
//
// Implementations must make Save atomic with respect to the per-user
// capacity check: two concurrent saves of new identities at the capacity
// boundary must not both succeed.
type Repository interface {
	// Save upserts the session keyed by (UserID, BookID). Saving an
	// identity the user already holds always succeeds and overwrites the
	// row in full; saving a new identity fails with
	// [apperr.CapacityExceeded] when the user is at the session cap.
	Save(ctx context.Context, session *Session) error

	// Get loads one session, or [dberr.ErrNoRows] when absent.
	Get(ctx context.Context, userID int64, bookID string) (*Session, error)

	// SetPage persists only the current page of an existing session.
	SetPage(ctx context.Context, userID int64, bookID string, page int) error

	// ResolveShortID expands a callback-payload identity prefix into the
	// full book identity, scoped to the requesting user. Returns
	// [dberr.ErrNoRows] when nothing matches.
	ResolveShortID(ctx context.Context, userID int64, shortID string) (string, error)

	// ListByUser returns the user's session summaries, most recently
	// written first.
	ListByUser(ctx context.Context, userID int64) ([]*Summary, error)

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, userID int64, bookID string) error

	// Count returns how many sessions the user currently holds.
	Count(ctx context.Context, userID int64) (int, error)
}
