package identsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the identity service.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new identity service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Login verifies credentials and returns a fresh token pair.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, "/v1/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register performs registration step one, creating an unconfirmed account
// and returning the confirmation link.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var out RegisterResponse
	if err := c.postJSON(ctx, "/v1/auth/register", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmEmail presents a confirmation token to flip the account's
// email-confirmed flag. Tokens are single use.
func (c *SDKClient) ConfirmEmail(ctx context.Context, req ConfirmEmailRequest) (*ConfirmEmailResponse, error) {
	var out ConfirmEmailResponse
	if err := c.postJSON(ctx, "/v1/auth/confirm-email", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteRegistration performs registration step two. It verifies the same
// confirmation token as ConfirmEmail but acknowledges with
// "RegistrationComplete".
func (c *SDKClient) CompleteRegistration(ctx context.Context, req CompleteRegistrationRequest) (*CompleteRegistrationResponse, error) {
	var out CompleteRegistrationResponse
	if err := c.postJSON(ctx, "/v1/auth/register/complete", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshTokens exchanges an expired access token plus its matching refresh
// token for a new pair. The presented refresh token is rotated out.
func (c *SDKClient) RefreshTokens(ctx context.Context, req RefreshTokenRequest) (*RefreshTokenResponse, error) {
	var out RefreshTokenResponse
	if err := c.postJSON(ctx, "/v1/auth/token/refresh", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// RevokeToken revokes the session identified by the access/refresh token pair.
func (c *SDKClient) RevokeToken(ctx context.Context, req RevokeTokenRequest) (*RevokeTokenResponse, error) {
	var out RevokeTokenResponse
	if err := c.postJSON(ctx, "/v1/auth/token/revoke", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/livez")
}

// GetReadiness checks if the service is ready to serve traffic.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.getHealth(ctx, "/readyz")
}

func (c *SDKClient) getHealth(ctx context.Context, path string) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// postJSON encodes the request body, performs the POST and decodes the
// response into target, converting error responses into *APIError values.
func (c *SDKClient) postJSON(ctx context.Context, path string, body, target any, expectedStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	return decodeJSON(resp, target, expectedStatus)
}

// decodeJSON decodes a JSON response into the target, returning a typed
// *APIError when the status does not match the expected one.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
