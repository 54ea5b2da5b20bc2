package store

import (
	"context"
	"errors"

	"github.com/stallworks/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and transaction scoping is explicit so multi-step operations
// cannot accidentally nest transactions.
type Store interface {
	Accounts() Accounts
	Roles() Roles
	Sessions() Sessions
	Confirmations() Confirmations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back, otherwise it
	// is committed. This is the recommended way to handle transactions.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail looks up an account by its normalized email.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateRole assigns a role to the account and bumps updated_at.
	UpdateRole(ctx context.Context, accountID, roleID string) error

	// SetEmailConfirmed flips the email_confirmed flag and bumps updated_at.
	SetEmailConfirmed(ctx context.Context, accountID string, confirmed bool) error

	// DeleteAccount removes the account; used only for registration rollback.
	// Cascades to sessions and confirmations (per schema).
	DeleteAccount(ctx context.Context, accountID string) error
}

type Roles interface {
	// GetRoleByID fetches a role by its ID.
	GetRoleByID(ctx context.Context, id string) (domain.Role, error)

	// GetRoleByName fetches a role by its name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by its refresh-token fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// RevokeSession flips revoked=1, sets updated_at.
	RevokeSession(ctx context.Context, sessionID string) error

	// RevokeAllAccountSessions bulk revocation for an account (e.g., password reset).
	RevokeAllAccountSessions(ctx context.Context, accountID string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}

type Confirmations interface {
	// CreateConfirmation writes a new confirmation token record
	// (token_hash is the fingerprint of the opaque token).
	CreateConfirmation(ctx context.Context, c domain.Confirmation) error

	// GetConfirmationByTokenHash returns a confirmation by fingerprint.
	GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error)

	// MarkConfirmationUsed sets used=1 and used_at=now (transaction-friendly).
	MarkConfirmationUsed(ctx context.Context, confirmationID string) error

	// DeleteUsedConfirmations is housekeeping; removes consumed tokens.
	DeleteUsedConfirmations(ctx context.Context) error
}
