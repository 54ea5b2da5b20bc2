package service

import (
	"errors"
	"fmt"

	"github.com/stallworks/identity/internal/identity/domain"
)

// Sentinel errors for the expected failure conditions. The HTTP layer
// dispatches on these with errors.Is; anything else is a 500.
var (
	// ErrUserDoesNotExist is a login failure for an unknown email (401).
	ErrUserDoesNotExist = errors.New("user does not exist")

	// ErrInvalidCredentials is a login failure for a wrong password (401).
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailNotConfirmed rejects logins before email confirmation (401).
	ErrEmailNotConfirmed = errors.New("email not confirmed")

	// ErrUnauthorised covers every refresh/revoke rejection. The message is
	// deliberately generic so a caller cannot tell which check failed.
	ErrUnauthorised = errors.New("unauthorised")

	// ErrUserAlreadyExists is a duplicate registration (409).
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is an unknown account id during confirmation (404).
	ErrUserNotFound = errors.New("user does not exist")

	// ErrConfirmationFailed covers a wrong, foreign or already-used
	// confirmation token (400).
	ErrConfirmationFailed = errors.New("email confirmation failed")
)

// RollbackError reports a registration failure together with how the
// compensating account delete played out. Making the outcome part of the
// error type means a caller cannot accidentally treat a half-created
// account as a clean failure.
type RollbackError struct {
	// Outcome is RolledBack or FatallyInconsistent.
	Outcome domain.RollbackOutcome

	// Cause is the failure that triggered the rollback.
	Cause error

	// DeleteErr is set when the compensating delete itself failed,
	// leaving an orphaned account row behind.
	DeleteErr error
}

func (e *RollbackError) Error() string {
	if e.Outcome == domain.FatallyInconsistent {
		return fmt.Sprintf("registration failed (%v) and rollback failed (%v): account row orphaned", e.Cause, e.DeleteErr)
	}
	return fmt.Sprintf("registration failed, account rolled back: %v", e.Cause)
}

func (e *RollbackError) Unwrap() error { return e.Cause }
