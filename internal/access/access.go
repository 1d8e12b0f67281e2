// Package access implements the bot's admin-approval access model.
//
// Anyone may knock via /start; a request sits in the pending registry until
// an admin approves or rejects it. Admins themselves are configured by
// environment and are always approved.
package access

import "time"

// User is an approved bot user.
type User struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	ApprovedAt time.Time
}

// PendingUser is a user whose access request awaits an admin decision.
type PendingUser struct {
	ID          int64
	Username    string
	FirstName   string
	LastName    string
	RequestedAt time.Time
}
