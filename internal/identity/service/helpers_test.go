package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stallworks/identity/internal/identity/domain"
	"github.com/stallworks/identity/internal/identity/store/drivers/sqlite"
	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/idx"
	"github.com/stallworks/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "identity-test"
	testAudience = "marketplace"

	testPassword = "P@ssw0rd!"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestKeys(t *testing.T) (jwtx.Signer, jwtx.Verifier) {
	t.Helper()

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	return signer, jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience})
}

func newSessionService(t *testing.T, st *sqlite.Store) *SessionService {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))
	signer, verifier := newTestKeys(t)

	return &SessionService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Validator:  OzzoValidator{},
		Issuer:     testIssuer,
		Audience:   []string{testAudience},
		AccessTTL:  time.Minute,
		SessionTTL: 30 * time.Minute,
	}
}

func newRegistrationService(t *testing.T, st *sqlite.Store) *RegistrationService {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	return &RegistrationService{
		Store:               st,
		Roles:               &RolesService{Store: st},
		Validator:           OzzoValidator{},
		ConfirmationBaseURL: "https://app.test/confirm",
	}
}

// seedAccount inserts a confirmed account with the test password and the
// "user" role.
func seedAccount(t *testing.T, st *sqlite.Store, email string, confirmed bool) domain.Account {
	t.Helper()
	ctx := context.Background()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	roles := &RolesService{Store: st}
	role, err := roles.EnsureRole(ctx, domain.RoleUser)
	require.NoError(t, err)

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	account := domain.Account{
		ID:             idx.New().String(),
		Email:          email,
		Username:       "Test User",
		FirstName:      "Test",
		LastName:       "User",
		PasswordHash:   hash,
		RoleID:         role.ID,
		EmailConfirmed: confirmed,
	}
	require.NoError(t, st.Accounts().CreateAccount(ctx, account))
	return account
}
