package reader

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Session is the persisted reading progress of one user in one book.
type Session struct {
	UserID       int64
	BookID       string
	Title        string
	Author       string
	Series       string
	SeriesNumber int

	// Content is the full pre-escaped body text. Pages are recomputed
	// from it on demand; only their count is cached in TotalPages.
	Content string

	CurrentPage int
	TotalPages  int

	// PageSize pins the pagination budget the session was created with,
	// so a later PAGE_SIZE config change cannot desynchronize TotalPages
	// from a recomputed page sequence.
	PageSize int

	UpdatedAt time.Time
}

// Summary is the listing projection of a session, without the body text.
type Summary struct {
	BookID       string
	Title        string
	Author       string
	Series       string
	SeriesNumber int
	CurrentPage  int
	TotalPages   int
}

// ShortIDLength is how many leading hex characters of a book identity the
// presentation layer embeds in callback payloads. 16 of 64 is plenty within
// one user's session set.
const ShortIDLength = 16

// Identity derives the deterministic book identity for a user and a set of
// parsed metadata. Re-ingesting semantically identical metadata collides
// onto the same identity on purpose: that is the dedup mechanism.
func Identity(userID int64, title, author, series string, seriesNumber int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s%s%s%d", userID, title, author, series, seriesNumber)))
	return hex.EncodeToString(sum[:])
}

// ShortID returns the stable callback-payload prefix of a book identity.
func ShortID(bookID string) string {
	if len(bookID) <= ShortIDLength {
		return bookID
	}
	return bookID[:ShortIDLength]
}

// ShortID returns the session's callback-payload identity prefix.
func (s *Session) ShortID() string { return ShortID(s.BookID) }

// ShortID returns the summary's callback-payload identity prefix.
func (s *Summary) ShortID() string { return ShortID(s.BookID) }
