package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
	"github.com/stallworks/identity/internal/identity/store"
	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/idx"
	"github.com/stallworks/identity/pkg/slogx"
)

// RegistrationService orchestrates the two-step registration workflow:
// account creation with a confirmation token, then token verification which
// flips the email-confirmed flag.
type RegistrationService struct {
	Store     store.Store
	Roles     *RolesService
	Validator Validator

	// ConfirmationBaseURL is the prefix for confirmation links handed back
	// from step one, e.g. "https://app.example.com/confirm".
	ConfirmationBaseURL string
}

// RegistrationResult is the outcome of a successful registration step one.
type RegistrationResult struct {
	UserID string

	// ConfirmationLink carries the userId, confirmation token and email as
	// query parameters. The raw token exists only here; the store keeps a
	// fingerprint.
	ConfirmationLink string
}

// RegisterStepOne creates an unconfirmed account, assigns the "user" role
// and mints a single-use confirmation token.
//
// If role assignment or token minting fails after the account row exists,
// the account is deleted again. A failed compensating delete is reported as
// a *RollbackError with Outcome FatallyInconsistent, never just logged.
func (s *RegistrationService) RegisterStepOne(ctx context.Context, req identsdk.RegisterRequest) (*RegistrationResult, error) {
	l := slogx.FromContext(ctx)

	if msgs := s.Validator.Validate(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	email := normalizeEmail(req.Email)

	_, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(identsdk.DateOfBirthLayout, req.DateOfBirth)
		if err != nil {
			return nil, &ValidationError{Messages: []string{"dateOfBirth: must be a valid date"}}
		}
		dob = &parsed
	}

	account := domain.Account{
		ID:           idx.New().String(),
		Email:        email,
		Username:     req.FirstName + " " + req.LastName,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		DateOfBirth:  dob,
		PasswordHash: hash,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race to a concurrent registration with the same email.
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	// From here on every failure must undo the account row.
	role, err := s.Roles.EnsureRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, s.rollback(ctx, account.ID, fmt.Errorf("ensure role: %w", err))
	}

	if err := s.Store.Accounts().UpdateRole(ctx, account.ID, role.ID); err != nil {
		return nil, s.rollback(ctx, account.ID, fmt.Errorf("assign role: %w", err))
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, s.rollback(ctx, account.ID, fmt.Errorf("mint confirmation token: %w", err))
	}

	confirmation := domain.Confirmation{
		ID:        idx.New().String(),
		AccountID: account.ID,
		TokenHash: cryptox.FingerprintToken(token),
	}
	if err := s.Store.Confirmations().CreateConfirmation(ctx, confirmation); err != nil {
		return nil, s.rollback(ctx, account.ID, fmt.Errorf("store confirmation: %w", err))
	}

	l.Info("registration step one complete", slog.String("account_id", account.ID))

	return &RegistrationResult{
		UserID:           account.ID,
		ConfirmationLink: s.confirmationLink(account.ID, token, email),
	}, nil
}

// rollback runs the compensating account delete and wraps the triggering
// failure into a RollbackError carrying the outcome.
func (s *RegistrationService) rollback(ctx context.Context, accountID string, cause error) error {
	l := slogx.FromContext(ctx)

	if delErr := s.Store.Accounts().DeleteAccount(ctx, accountID); delErr != nil {
		l.Error("registration rollback failed, account row orphaned",
			slog.String("account_id", accountID),
			slog.Any("cause", cause),
			slog.Any("delete_error", delErr),
		)
		return &RollbackError{
			Outcome:   domain.FatallyInconsistent,
			Cause:     cause,
			DeleteErr: delErr,
		}
	}

	l.Warn("registration failed, account rolled back",
		slog.String("account_id", accountID),
		slog.Any("cause", cause),
	)
	return &RollbackError{
		Outcome: domain.RolledBack,
		Cause:   cause,
	}
}

// ConfirmAccount is the one confirm primitive both confirmation paths share.
// It verifies the single-use token against the account, marks it used and
// flips the email-confirmed flag in one transaction.
func (s *RegistrationService) ConfirmAccount(ctx context.Context, accountID, token string) error {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Accounts().GetAccountByID(ctx, accountID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	fp := cryptox.FingerprintToken(token)

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		conf, err := tx.Confirmations().GetConfirmationByTokenHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrConfirmationFailed
			}
			return err
		}

		if conf.AccountID != accountID || conf.Used {
			return ErrConfirmationFailed
		}

		if err := tx.Confirmations().MarkConfirmationUsed(ctx, conf.ID); err != nil {
			return err
		}

		return tx.Accounts().SetEmailConfirmed(ctx, accountID, true)
	})
	if err != nil {
		return err
	}

	l.Info("account confirmed", slog.String("account_id", accountID))

	return nil
}

// ConfirmEmail validates the confirm-email request shape and runs the
// confirm primitive.
func (s *RegistrationService) ConfirmEmail(ctx context.Context, req identsdk.ConfirmEmailRequest) error {
	if msgs := s.Validator.Validate(req); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return s.ConfirmAccount(ctx, req.UserID, req.Token)
}

// CompleteRegistration is the step-two alias of ConfirmEmail; same token
// verification, distinct acknowledgement shape at the boundary.
func (s *RegistrationService) CompleteRegistration(ctx context.Context, req identsdk.CompleteRegistrationRequest) error {
	if msgs := s.Validator.Validate(req); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return s.ConfirmAccount(ctx, req.UserID, req.Token)
}

func (s *RegistrationService) confirmationLink(accountID, token, email string) string {
	q := url.Values{}
	q.Set("userId", accountID)
	q.Set("token", token)
	q.Set("email", email)
	return s.ConfirmationBaseURL + "?" + q.Encode()
}
