package domain

import "time"

type Account struct {
	ID             string
	Email          string // normalized to lower case, unique
	Username       string
	FirstName      string
	LastName       string
	DateOfBirth    *time.Time // nullable
	PasswordHash   string     // argon2 encoded
	RoleID         string     // Foreign key to roles table
	EmailConfirmed bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
