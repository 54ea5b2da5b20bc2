package domain

import "time"

// Well-known role names. Roles only tag the issued token's claims; they are
// not a permission engine.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
