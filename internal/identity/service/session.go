package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
	"github.com/stallworks/identity/internal/identity/store"
	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/idx"
	"github.com/stallworks/identity/pkg/jwtx"
	"github.com/stallworks/identity/pkg/slogx"
)

// SessionService owns credential verification and the token lifecycle:
// login, refresh and revoke.
type SessionService struct {
	Store     store.Store
	Signer    jwtx.Signer
	Verifier  jwtx.Verifier
	Validator Validator

	Issuer   string
	Audience []string

	AccessTTL  time.Duration
	SessionTTL time.Duration
}

// LoginResult is what a successful login hands back.
type LoginResult struct {
	Email  string
	Tokens domain.TokenPair
}

// Login verifies credentials and opens a new session.
//
// The three rejection conditions are checked in priority order: unknown
// email, wrong password, unconfirmed email. Each maps to a distinct 401
// message at the boundary.
func (s *SessionService) Login(ctx context.Context, req identsdk.LoginRequest) (*LoginResult, error) {
	l := slogx.FromContext(ctx)

	if msgs := s.Validator.Validate(req); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}

	email := normalizeEmail(req.Email)

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("login rejected: unknown email", slog.String("email", email))
			return nil, ErrUserDoesNotExist
		}
		return nil, err
	}

	if err := cryptox.VerifyPassword(req.Password, account.PasswordHash); err != nil {
		l.Info("login rejected: password mismatch", slog.String("account_id", account.ID))
		return nil, ErrInvalidCredentials
	}

	if !account.EmailConfirmed {
		l.Info("login rejected: email not confirmed", slog.String("account_id", account.ID))
		return nil, ErrEmailNotConfirmed
	}

	pair, err := s.openSession(ctx, s.Store, account, "")
	if err != nil {
		return nil, err
	}

	l.Info("login succeeded", slog.String("account_id", account.ID))

	return &LoginResult{Email: account.Email, Tokens: *pair}, nil
}

// Refresh exchanges an expired-but-otherwise-valid access token plus its
// matching refresh token for a fresh pair. The presented refresh token is
// rotated: its session is revoked and replaced inside one transaction, so a
// replayed old token is dead the moment the exchange commits.
func (s *SessionService) Refresh(ctx context.Context, accessToken, refreshToken string) (*domain.TokenPair, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)

	account, err := s.principal(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	fp := cryptox.FingerprintToken(refreshToken)

	var pair *domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		sess, err := tx.Sessions().GetSessionByTokenHash(ctx, fp)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnauthorised
			}
			return err
		}

		// The session must belong to the token's principal and still be live.
		if sess.AccountID != account.ID || !sess.Active(now) {
			l.Info("refresh rejected", slog.String("account_id", account.ID), slog.String("session_id", sess.ID))
			return ErrUnauthorised
		}

		if err := tx.Sessions().RevokeSession(ctx, sess.ID); err != nil {
			return err
		}

		pair, err = s.openSession(ctx, tx, account, sess.DeviceInfo)
		return err
	})
	if err != nil {
		return nil, err
	}

	l.Info("session refreshed", slog.String("account_id", account.ID))

	return pair, nil
}

// Revoke kills the session matching the presented refresh token. The caller
// must hold both the access token (for the principal) and the session's
// refresh token, so a leaked access token alone cannot revoke anything.
func (s *SessionService) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	l := slogx.FromContext(ctx)

	account, err := s.principal(ctx, accessToken)
	if err != nil {
		return err
	}

	fp := cryptox.FingerprintToken(refreshToken)

	sess, err := s.Store.Sessions().GetSessionByTokenHash(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUnauthorised
		}
		return err
	}

	// An already-revoked session is treated like an unknown one.
	if sess.AccountID != account.ID || sess.Revoked {
		l.Info("revoke rejected", slog.String("account_id", account.ID), slog.String("session_id", sess.ID))
		return ErrUnauthorised
	}

	if err := s.Store.Sessions().RevokeSession(ctx, sess.ID); err != nil {
		return err
	}

	l.Info("session revoked", slog.String("account_id", account.ID), slog.String("session_id", sess.ID))

	return nil
}

// principal recovers the account behind a possibly-expired access token.
// Signature, issuer and audience must still hold; every failure collapses
// into ErrUnauthorised so callers cannot probe which check tripped.
func (s *SessionService) principal(ctx context.Context, accessToken string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.VerifyExpired(accessToken)
	if err != nil {
		l.Info("token rejected", slog.String("reason", err.Error()))
		return domain.Account{}, ErrUnauthorised
	}

	if claims.Subject == "" {
		return domain.Account{}, ErrUnauthorised
	}

	account, err := s.Store.Accounts().GetAccountByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrUnauthorised
		}
		return domain.Account{}, err
	}

	return account, nil
}

// openSession signs a fresh access token and persists a new session row
// against st, which is either the root store or an open transaction.
func (s *SessionService) openSession(ctx context.Context, st store.Store, account domain.Account, deviceInfo string) (*domain.TokenPair, error) {
	now := time.Now()

	roleName := ""
	if account.RoleID != "" {
		role, err := st.Roles().GetRoleByID(ctx, account.RoleID)
		if err != nil {
			return nil, err
		}
		roleName = role.Name
	}

	claims := jwtx.NewAccessClaims(account.Email, account.Username, roleName, s.AccessTTL, s.Issuer, s.Audience, now)
	accessToken, err := s.Signer.Sign(claims)
	if err != nil {
		return nil, err
	}

	refreshOpaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(s.SessionTTL)

	sess := domain.Session{
		ID:         idx.New().String(),
		AccountID:  account.ID,
		TokenHash:  cryptox.FingerprintToken(refreshOpaque),
		DeviceInfo: deviceInfo,
		ExpiresAt:  expiresAt,
	}
	if err := st.Sessions().CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshOpaque,
		ExpiresAt:    expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
