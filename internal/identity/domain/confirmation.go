package domain

import "time"

// Confirmation is a single-use email confirmation token bound to one account.
// Only the fingerprint of the token is stored.
type Confirmation struct {
	ID        string
	AccountID string
	TokenHash string
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}
