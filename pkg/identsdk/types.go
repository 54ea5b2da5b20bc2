package identsdk

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// DateOfBirthLayout is the wire format for the dateOfBirth field.
const DateOfBirthLayout = "2006-01-02"

// MinimumAge is the youngest age at which an account may be registered.
const MinimumAge = 13

// ============================================================================
// Login
// ============================================================================

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the validation rules for the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse is returned from a successful or failed login attempt.
type LoginResponse struct {
	Succeeded bool `json:"succeeded"`

	// Email echoes the normalized account email on success
	Email string `json:"email,omitempty"`

	// SecurityToken is the signed JWT access token
	SecurityToken string `json:"securityToken,omitempty"`

	// Expiration is the absolute expiry of the refresh token
	Expiration *time.Time `json:"expiration,omitempty"`

	// RefreshToken is the opaque refresh token; store it securely,
	// the service keeps only a fingerprint
	RefreshToken string `json:"refreshToken,omitempty"`

	Error *APIError `json:"apiError,omitempty"`
}

// ============================================================================
// Registration
// ============================================================================

// RegisterRequest is the body of POST /v1/auth/register (registration step one).
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`

	// DateOfBirth is optional, formatted per DateOfBirthLayout
	DateOfBirth string `json:"dateOfBirth,omitempty"`

	// Role is advisory; the service always assigns the "user" role on
	// registration regardless of what is requested here
	Role string `json:"role,omitempty"`
}

// Validate runs the validation rules for registration step one.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		validation.Field(&r.DateOfBirth, validation.Date(DateOfBirthLayout), validation.By(validateAge)),
	)
}

func validateAge(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	dob, err := time.Parse(DateOfBirthLayout, s)
	if err != nil {
		// The Date rule reports the format problem
		return nil
	}

	now := time.Now()
	if dob.After(now) {
		return errors.New("must not be in the future")
	}

	cutoff := now.AddDate(-MinimumAge, 0, 0)
	if dob.After(cutoff) {
		return errors.New("must be at least 13 years old")
	}

	return nil
}

// RegisterResponse is returned from registration step one.
type RegisterResponse struct {
	RegistrationStepOne bool `json:"registrationStepOne"`

	// UserID is the identifier of the newly created unconfirmed account
	UserID string `json:"userId,omitempty"`

	// ConfirmationEmailLink carries the userId, confirmation token
	// and email as query parameters
	ConfirmationEmailLink string `json:"confirmationEmailLink,omitempty"`

	// Errors lists field validation failures, if any
	Errors []string `json:"errors,omitempty"`

	Error *APIError `json:"apiError,omitempty"`
}

// ============================================================================
// Confirmation
// ============================================================================

// Confirmation acknowledgement codes.
const (
	ConfirmationCodeEmailConfirmed       = "EmailConfirmed"
	ConfirmationCodeRegistrationComplete = "RegistrationComplete"
)

// ConfirmEmailRequest is the body of POST /v1/auth/confirm-email.
type ConfirmEmailRequest struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	Email  string `json:"email,omitempty"`
}

// Validate runs the validation rules for the confirm email request.
func (r ConfirmEmailRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Token, validation.Required),
	)
}

// ConfirmEmailResponse acknowledges a successful or failed email confirmation.
type ConfirmEmailResponse struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`

	// ConfirmationCode is "EmailConfirmed" on success
	ConfirmationCode string `json:"confirmationCode,omitempty"`

	Error *APIError `json:"apiError,omitempty"`
}

// CompleteRegistrationRequest is the body of POST /v1/auth/register/complete
// (registration step two). It verifies the same confirmation token as
// ConfirmEmailRequest but acknowledges with a distinct code.
type CompleteRegistrationRequest struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Token  string `json:"token"`
}

// Validate runs the validation rules for registration step two.
func (r CompleteRegistrationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
		validation.Field(&r.Token, validation.Required),
	)
}

// CompleteRegistrationResponse is returned from registration step two.
type CompleteRegistrationResponse struct {
	UserID              string `json:"userId,omitempty"`
	RegistrationStepTwo bool   `json:"registrationStepTwo"`

	// ConfirmationCode is "RegistrationComplete" on success
	ConfirmationCode string `json:"confirmationCode,omitempty"`

	Errors []string  `json:"errors,omitempty"`
	Error  *APIError `json:"apiError,omitempty"`
}

// ============================================================================
// Token lifecycle
// ============================================================================

// RefreshTokenRequest is the body of POST /v1/auth/token/refresh.
type RefreshTokenRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Validate runs the validation rules for the refresh request.
func (r RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AccessToken, validation.Required),
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// RefreshTokenResponse is returned from a token refresh. The refresh token is
// rotated: RefreshToken carries a replacement and the presented token is dead.
type RefreshTokenResponse struct {
	Succeeded bool `json:"succeeded"`

	// JWTToken is the newly signed access token
	JWTToken string `json:"jwtToken,omitempty"`

	// Expiration is the absolute expiry of the replacement refresh token
	Expiration *time.Time `json:"expiration,omitempty"`

	// RefreshToken is the replacement opaque refresh token
	RefreshToken string `json:"refreshToken,omitempty"`

	Error *APIError `json:"apiError,omitempty"`
}

// RevokeTokenRequest is the body of POST /v1/auth/token/revoke. The refresh
// token must match the session being revoked.
type RevokeTokenRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Validate runs the validation rules for the revoke request.
func (r RevokeTokenRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AccessToken, validation.Required),
		validation.Field(&r.RefreshToken, validation.Required),
	)
}

// RevokeTokenResponse acknowledges a revocation.
type RevokeTokenResponse struct {
	Succeeded bool      `json:"succeeded"`
	Error     *APIError `json:"apiError,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database,omitempty"`
	Signer   string `json:"signer,omitempty"`
}

// HealthResponse is returned from the /livez and /readyz endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
