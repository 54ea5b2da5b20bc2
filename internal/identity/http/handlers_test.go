package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/internal/identity/store/drivers/sqlite"
	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "identity-test"
	testAudience = "marketplace"
)

type testEnv struct {
	store    *sqlite.Store
	keys     *jwtx.KeySet
	sessions *service.SessionService
	regs     *service.RegistrationService
	router   *Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Rate limiters are baked into the mux at registration; leave plenty
	// of headroom so assertions never race the strict production burst.
	origStrict, origModerate := httpx.StrictLimit, httpx.ModerateLimit
	httpx.StrictLimit, httpx.ModerateLimit = httpx.LenientLimit, httpx.LenientLimit
	t.Cleanup(func() {
		httpx.StrictLimit, httpx.ModerateLimit = origStrict, origModerate
	})

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifierEdDSA(keys, testIssuer, []string{testAudience})

	sessions := &service.SessionService{
		Store:      st,
		Signer:     signer,
		Verifier:   verifier,
		Validator:  service.OzzoValidator{},
		Issuer:     testIssuer,
		Audience:   []string{testAudience},
		AccessTTL:  time.Minute,
		SessionTTL: 30 * time.Minute,
	}

	regs := &service.RegistrationService{
		Store:               st,
		Roles:               &service.RolesService{Store: st},
		Validator:           service.OzzoValidator{},
		ConfirmationBaseURL: "https://app.test/confirm",
	}

	router := NewRouter(keys, "test", st, slog.Default())
	router.SessionService = sessions
	router.RegistrationService = regs
	router.ApplyRoutes()

	return &testEnv{store: st, keys: keys, sessions: sessions, regs: regs, router: router}
}

func (e *testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.Mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerAndConfirm walks the full happy path and returns the account email.
func (e *testEnv) registerAndConfirm(t *testing.T, email string) {
	t.Helper()

	rec := e.post(t, "/v1/auth/register", identsdk.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "S3curePass",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decode[identsdk.RegisterResponse](t, rec)
	require.True(t, res.RegistrationStepOne)

	link, err := url.Parse(res.ConfirmationEmailLink)
	require.NoError(t, err)

	confirm := e.post(t, "/v1/auth/confirm-email", identsdk.ConfirmEmailRequest{
		UserID: link.Query().Get("userId"),
		Token:  link.Query().Get("token"),
		Email:  link.Query().Get("email"),
	})
	require.Equal(t, http.StatusOK, confirm.Code)
}

func TestRegistrationAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndConfirm(t, "ada@example.com")

	rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: "S3curePass",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	res := decode[identsdk.LoginResponse](t, rec)
	require.True(t, res.Succeeded)
	require.Equal(t, "ada@example.com", res.Email)
	require.NotEmpty(t, res.SecurityToken)
	require.NotEmpty(t, res.RefreshToken)
	require.NotNil(t, res.Expiration)
	require.Nil(t, res.Error)
}

func TestLoginErrors(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndConfirm(t, "ada@example.com")

	t.Run("unknown email", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: "S3curePass",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		res := decode[identsdk.LoginResponse](t, rec)
		require.False(t, res.Succeeded)
		require.NotNil(t, res.Error)
		require.Equal(t, "user does not exist", res.Error.ErrorMessage)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		res := decode[identsdk.LoginResponse](t, rec)
		require.Equal(t, "invalid email or password", res.Error.ErrorMessage)
	})

	t.Run("unconfirmed account", func(t *testing.T) {
		reg := env.post(t, "/v1/auth/register", identsdk.RegisterRequest{
			FirstName: "Grace",
			LastName:  "Hopper",
			Email:     "grace@example.com",
			Password:  "S3curePass",
		})
		require.Equal(t, http.StatusCreated, reg.Code)

		rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{
			Email:    "grace@example.com",
			Password: "S3curePass",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		res := decode[identsdk.LoginResponse](t, rec)
		require.Equal(t, "email not confirmed", res.Error.ErrorMessage)
	})

	t.Run("validation failure", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{Email: "not-an-email"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		res := decode[identsdk.LoginResponse](t, rec)
		require.NotNil(t, res.Error)
		require.NotNil(t, res.Error.Detail)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		env.router.Mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDuplicateRegistrationConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndConfirm(t, "ada@example.com")

	rec := env.post(t, "/v1/auth/register", identsdk.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "S3curePass",
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	res := decode[identsdk.RegisterResponse](t, rec)
	require.False(t, res.RegistrationStepOne)
	require.Equal(t, "user already exists", res.Error.ErrorMessage)
}

func TestConfirmationEndpoints(t *testing.T) {
	env := newTestEnv(t)

	reg := env.post(t, "/v1/auth/register", identsdk.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "S3curePass",
	})
	require.Equal(t, http.StatusCreated, reg.Code)

	res := decode[identsdk.RegisterResponse](t, reg)
	link, err := url.Parse(res.ConfirmationEmailLink)
	require.NoError(t, err)
	userID := link.Query().Get("userId")
	token := link.Query().Get("token")

	t.Run("step two acknowledges with RegistrationComplete", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/register/complete", identsdk.CompleteRegistrationRequest{
			UserID: userID,
			Token:  token,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		out := decode[identsdk.CompleteRegistrationResponse](t, rec)
		require.True(t, out.RegistrationStepTwo)
		require.Equal(t, identsdk.ConfirmationCodeRegistrationComplete, out.ConfirmationCode)
	})

	t.Run("second use of the token is a 400", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/confirm-email", identsdk.ConfirmEmailRequest{
			UserID: userID,
			Token:  token,
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		out := decode[identsdk.ConfirmEmailResponse](t, rec)
		require.Equal(t, "email confirmation failed", out.Error.ErrorMessage)
	})

	t.Run("unknown user is a 404", func(t *testing.T) {
		rec := env.post(t, "/v1/auth/confirm-email", identsdk.ConfirmEmailRequest{
			UserID: "01ZZZZZZZZZZZZZZZZZZZZZZZZ",
			Token:  token,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTokenEndpoints(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndConfirm(t, "ada@example.com")

	login := func(t *testing.T) identsdk.LoginResponse {
		rec := env.post(t, "/v1/auth/login", identsdk.LoginRequest{
			Email:    "ada@example.com",
			Password: "S3curePass",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[identsdk.LoginResponse](t, rec)
	}

	t.Run("refresh rotates the pair", func(t *testing.T) {
		tokens := login(t)

		rec := env.post(t, "/v1/auth/token/refresh", identsdk.RefreshTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: tokens.RefreshToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[identsdk.RefreshTokenResponse](t, rec)
		require.True(t, res.Succeeded)
		require.NotEmpty(t, res.JWTToken)
		require.NotEqual(t, tokens.RefreshToken, res.RefreshToken)

		replay := env.post(t, "/v1/auth/token/refresh", identsdk.RefreshTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: tokens.RefreshToken,
		})
		require.Equal(t, http.StatusUnauthorized, replay.Code)
	})

	t.Run("refresh with a wrong refresh token is a 401", func(t *testing.T) {
		tokens := login(t)

		rec := env.post(t, "/v1/auth/token/refresh", identsdk.RefreshTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: "bogus",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		res := decode[identsdk.RefreshTokenResponse](t, rec)
		require.False(t, res.Succeeded)
		require.Equal(t, 401, res.Error.StatusCode)
	})

	t.Run("revoke then refresh fails", func(t *testing.T) {
		tokens := login(t)

		rec := env.post(t, "/v1/auth/token/revoke", identsdk.RevokeTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: tokens.RefreshToken,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, decode[identsdk.RevokeTokenResponse](t, rec).Succeeded)

		refresh := env.post(t, "/v1/auth/token/refresh", identsdk.RefreshTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: tokens.RefreshToken,
		})
		require.Equal(t, http.StatusUnauthorized, refresh.Code)
	})

	t.Run("revoke without the matching refresh token is a 401", func(t *testing.T) {
		tokens := login(t)

		rec := env.post(t, "/v1/auth/token/revoke", identsdk.RevokeTokenRequest{
			AccessToken:  tokens.SecurityToken,
			RefreshToken: "bogus",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("livez", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		rec := httptest.NewRecorder()
		env.router.Mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[identsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", res.Status)
	})

	t.Run("readyz", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		env.router.Mux.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		res := decode[identsdk.HealthResponse](t, rec)
		require.Equal(t, "ok", res.Status)
		require.NotNil(t, res.Checks)
		require.Equal(t, "ok", res.Checks.Database)
	})
}
