package service

import (
	"context"
	"testing"
	"time"

	"github.com/stallworks/identity/internal/identity/store"
	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)
	seedAccount(t, st, "alice@example.com", true)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", res.Email)
		require.NotEmpty(t, res.Tokens.AccessToken)
		require.NotEmpty(t, res.Tokens.RefreshToken)
		require.True(t, res.Tokens.ExpiresAt.After(time.Now()))
	})

	t.Run("email is normalized", func(t *testing.T) {
		res, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "  ALICE@example.com ",
			Password: testPassword,
		})
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", res.Email)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: testPassword,
		})
		require.ErrorIs(t, err, ErrUserDoesNotExist)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unconfirmed account with correct password", func(t *testing.T) {
		seedAccount(t, st, "pending@example.com", false)

		_, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "pending@example.com",
			Password: testPassword,
		})
		require.ErrorIs(t, err, ErrEmailNotConfirmed)
	})

	t.Run("validation failure lists messages", func(t *testing.T) {
		_, err := svc.Login(ctx, identsdk.LoginRequest{Email: "not-an-email"})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.NotEmpty(t, verr.Messages)
	})

	t.Run("issued access token carries claims", func(t *testing.T) {
		res, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)

		claims, err := svc.Verifier.Verify(res.Tokens.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", claims.Subject)
		require.Equal(t, "user", claims.Role)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)
	seedAccount(t, st, "alice@example.com", true)

	login := func(t *testing.T) *LoginResult {
		res, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)
		return res
	}

	t.Run("rotates the refresh token", func(t *testing.T) {
		res := login(t)

		pair, err := svc.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEqual(t, res.Tokens.RefreshToken, pair.RefreshToken)

		// Presented token is dead after rotation.
		_, err = svc.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)

		// Replacement works.
		_, err = svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("accepts an expired access token", func(t *testing.T) {
		res := login(t)

		expired := jwtx.NewAccessClaims("alice@example.com", "Test User", "user",
			-time.Minute, testIssuer, []string{testAudience}, time.Now().Add(-time.Hour))
		expiredToken, err := svc.Signer.Sign(expired)
		require.NoError(t, err)

		_, err = svc.Verifier.Verify(expiredToken)
		require.Error(t, err, "sanity: token must actually be expired")

		pair, err := svc.Refresh(ctx, expiredToken, res.Tokens.RefreshToken)
		require.NoError(t, err)
		require.NotEmpty(t, pair.AccessToken)
	})

	t.Run("rejects a non-matching refresh token", func(t *testing.T) {
		res := login(t)

		wrong, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, res.Tokens.AccessToken, wrong)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("rejects a refresh token that belongs to another account", func(t *testing.T) {
		seedAccount(t, st, "bob@example.com", true)
		bob, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "bob@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)

		alice := login(t)

		_, err = svc.Refresh(ctx, alice.Tokens.AccessToken, bob.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("rejects a revoked session", func(t *testing.T) {
		res := login(t)

		// Kill the session directly in the store.
		fp := cryptox.FingerprintToken(res.Tokens.RefreshToken)
		sess, err := st.Sessions().GetSessionByTokenHash(ctx, fp)
		require.NoError(t, err)
		require.NoError(t, st.Sessions().RevokeSession(ctx, sess.ID))

		_, err = svc.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("rejects an expired session even with the matching token", func(t *testing.T) {
		shortLived := newSessionService(t, st)
		shortLived.SessionTTL = -time.Minute

		res, err := shortLived.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)

		// The stored session is already past its expiry; the exact
		// refresh token it was minted with must not resurrect it.
		_, err = shortLived.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("rejects a tampered access token", func(t *testing.T) {
		res := login(t)

		tampered := res.Tokens.AccessToken + "x"
		_, err := svc.Refresh(ctx, tampered, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)
	seedAccount(t, st, "alice@example.com", true)

	login := func(t *testing.T) *LoginResult {
		res, err := svc.Login(ctx, identsdk.LoginRequest{
			Email:    "alice@example.com",
			Password: testPassword,
		})
		require.NoError(t, err)
		return res
	}

	t.Run("kills the session", func(t *testing.T) {
		res := login(t)

		require.NoError(t, svc.Revoke(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken))

		// An immediately following refresh with the revoked token fails.
		_, err := svc.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("requires the matching refresh token", func(t *testing.T) {
		res := login(t)

		wrong, err := cryptox.GenerateToken(cryptox.TokenSize256)
		require.NoError(t, err)

		require.ErrorIs(t, svc.Revoke(ctx, res.Tokens.AccessToken, wrong), ErrUnauthorised)

		// Session is untouched; refresh still works.
		_, err = svc.Refresh(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("revoking twice fails the second time", func(t *testing.T) {
		res := login(t)

		require.NoError(t, svc.Revoke(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken))
		require.ErrorIs(t, svc.Revoke(ctx, res.Tokens.AccessToken, res.Tokens.RefreshToken), ErrUnauthorised)
	})

	t.Run("only revokes the targeted session", func(t *testing.T) {
		first := login(t)
		second := login(t)

		require.NoError(t, svc.Revoke(ctx, first.Tokens.AccessToken, first.Tokens.RefreshToken))

		// The account's other session stays live.
		_, err := svc.Refresh(ctx, second.Tokens.AccessToken, second.Tokens.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("bulk revocation kills every session for the account", func(t *testing.T) {
		first := login(t)
		second := login(t)

		fp := cryptox.FingerprintToken(first.Tokens.RefreshToken)
		sess, err := st.Sessions().GetSessionByTokenHash(ctx, fp)
		require.NoError(t, err)

		require.NoError(t, st.Sessions().RevokeAllAccountSessions(ctx, sess.AccountID))

		_, err = svc.Refresh(ctx, first.Tokens.AccessToken, first.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
		_, err = svc.Refresh(ctx, second.Tokens.AccessToken, second.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})
}

func TestPrincipalRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)
	seedAccount(t, st, "alice@example.com", true)

	res, err := svc.Login(ctx, identsdk.LoginRequest{
		Email:    "alice@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	t.Run("wrong issuer", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("alice@example.com", "Test User", "user",
			time.Minute, "someone-else", []string{testAudience}, time.Now())
		token, err := svc.Signer.Sign(claims)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, token, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("alice@example.com", "Test User", "user",
			time.Minute, testIssuer, []string{"other-service"}, time.Now())
		token, err := svc.Signer.Sign(claims)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, token, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})

	t.Run("unknown subject", func(t *testing.T) {
		claims := jwtx.NewAccessClaims("ghost@example.com", "Ghost", "user",
			time.Minute, testIssuer, []string{testAudience}, time.Now())
		token, err := svc.Signer.Sign(claims)
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, token, res.Tokens.RefreshToken)
		require.ErrorIs(t, err, ErrUnauthorised)
	})
}

func TestHousekeepingPurgesExpiredSessions(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newSessionService(t, st)
	svc.SessionTTL = -time.Minute // sessions are born expired
	seedAccount(t, st, "alice@example.com", true)

	res, err := svc.Login(ctx, identsdk.LoginRequest{
		Email:    "alice@example.com",
		Password: testPassword,
	})
	require.NoError(t, err)

	require.NoError(t, st.Sessions().DeleteExpiredSessions(ctx))

	fp := cryptox.FingerprintToken(res.Tokens.RefreshToken)
	_, err = st.Sessions().GetSessionByTokenHash(ctx, fp)
	require.ErrorIs(t, err, store.ErrNotFound)
}
