package identity_test

import (
	"testing"

	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that /v1/auth/login is rate limited.
// The endpoint has strict limits (5 req/min) to slow down credential
// stuffing.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupIdentityContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := identsdk.NewSDKClient(baseURL)

	// Make requests until we hit the rate limit (strict limit is 5 req/min).
	// The first 5 fail on credentials, the 6th on the limiter.
	var lastErr error
	for i := range 6 {
		_, err := client.Login(t.Context(), identsdk.LoginRequest{
			Email:    "nobody@example.com",
			Password: "wrongpass",
		})
		if i < 5 {
			assertAPIError(t, err, 401, "Invalid credentials should fail")
		} else {
			lastErr = err
		}
	}

	require.Error(t, lastErr)
	require.Contains(t, lastErr.Error(), "429", "Should be rate limited after 5 requests")
	t.Logf("Successfully rate limited after 5 requests to /v1/auth/login")
}
