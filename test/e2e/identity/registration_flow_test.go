package identity_test

import (
	"testing"

	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

// TestRegisterConfirmLogin tests the complete onboarding flow:
// 1. Register an account (step one)
// 2. Confirm the email with the token from the confirmation link
// 3. Login with the registered credentials
func TestRegisterConfirmLogin(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	registerAndConfirm(t, client, "ada@example.com")
	t.Logf("Registration and confirmation successful")

	tokens := performLogin(t, client, "ada@example.com")
	require.Equal(t, "ada@example.com", tokens.Email)

	t.Logf("Login successful")
	t.Logf("Access Token: %s", tokens.SecurityToken)
	t.Logf("Refresh Token: %s", tokens.RefreshToken)
}

// TestRegistrationStepTwo completes registration with the second-step
// wrapper instead of the email confirmation one.
func TestRegistrationStepTwo(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	userID, token := registerUser(t, client, "grace@example.com")

	resp, err := client.CompleteRegistration(t.Context(), identsdk.CompleteRegistrationRequest{
		UserID: userID,
		Token:  token,
	})
	require.NoError(t, err)
	require.True(t, resp.RegistrationStepTwo)
	require.Equal(t, identsdk.ConfirmationCodeRegistrationComplete, resp.ConfirmationCode)

	// The account is confirmed either way, so login works afterwards
	performLogin(t, client, "grace@example.com")
}

func TestRegistrationRejectsDuplicates(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	registerUser(t, client, "ada@example.com")

	_, err := client.Register(t.Context(), identsdk.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Again",
		Email:     "ada@example.com",
		Password:  testPassword,
	})
	assertAPIError(t, err, 409, "Duplicate registration should conflict")
}

func TestConfirmationTokenIsSingleUse(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	userID, token := registerUser(t, client, "ada@example.com")

	first, err := client.ConfirmEmail(t.Context(), identsdk.ConfirmEmailRequest{
		UserID: userID,
		Token:  token,
	})
	require.NoError(t, err)
	require.Equal(t, identsdk.ConfirmationCodeEmailConfirmed, first.ConfirmationCode)

	_, err = client.ConfirmEmail(t.Context(), identsdk.ConfirmEmailRequest{
		UserID: userID,
		Token:  token,
	})
	assertAPIError(t, err, 400, "Second confirmation with the same token should fail")
}

func TestLoginRequiresConfirmedEmail(t *testing.T) {
	baseURL, cleanup := setupIdentityContainer(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	registerUser(t, client, "ada@example.com")

	_, err := client.Login(t.Context(), identsdk.LoginRequest{
		Email:    "ada@example.com",
		Password: testPassword,
	})
	assertAPIError(t, err, 401, "Login before confirmation should be rejected")
}
