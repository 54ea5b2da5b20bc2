package domain

import "time"

// Session models one refresh-token grant. An account may hold many concurrent
// sessions; revocation targets a single session, not the whole account.
type Session struct {
	ID         string
	AccountID  string
	TokenHash  string // deterministic fingerprint (base64url SHA-256), never the raw token
	DeviceInfo string // free-form client description, may be empty
	ExpiresAt  time.Time
	Revoked    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Active reports whether the session can still be exchanged at the given time.
func (s *Session) Active(now time.Time) bool {
	return !s.Revoked && now.Before(s.ExpiresAt)
}
