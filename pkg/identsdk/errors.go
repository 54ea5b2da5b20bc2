package identsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ============================================================================
// APIError - structured error carried on every response
// ============================================================================

// APIError is the structured error embedded in every response body. Successful
// responses never populate it; callers branch on its presence.
type APIError struct {
	// HTTPStatusCode is the textual status, e.g. "Unauthorized"
	HTTPStatusCode string `json:"httpStatusCode"`

	// StatusCode is the numeric HTTP status
	StatusCode int `json:"statusCode"`

	// ErrorMessage is a stable, caller-facing message
	ErrorMessage string `json:"errorMessage"`

	// Detail optionally carries extra context (validation messages, etc.)
	Detail *string `json:"detail"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("%d %s: %s (%s)", e.StatusCode, e.HTTPStatusCode, e.ErrorMessage, *e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.HTTPStatusCode, e.ErrorMessage)
}

// NewAPIError creates an APIError for the given HTTP status and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		HTTPStatusCode: http.StatusText(statusCode),
		StatusCode:     statusCode,
		ErrorMessage:   message,
	}
}

// WithDetail returns a copy of the error carrying the supplied detail string.
func (e *APIError) WithDetail(detail string) *APIError {
	out := *e
	out.Detail = &detail
	return &out
}

// NewValidationError creates a 400 APIError listing every failing field.
func NewValidationError(messages []string) *APIError {
	return NewAPIError(http.StatusBadRequest, "validation failed").
		WithDetail(strings.Join(messages, "; "))
}

// Predefined errors for the conditions the service reports. Messages are
// deliberately generic so callers cannot tell which credential factor failed.
var (
	ErrUserDoesNotExist     = NewAPIError(http.StatusUnauthorized, "user does not exist")
	ErrInvalidCredentials   = NewAPIError(http.StatusUnauthorized, "invalid email or password")
	ErrEmailNotConfirmed    = NewAPIError(http.StatusUnauthorized, "email not confirmed")
	ErrUnauthorised         = NewAPIError(http.StatusUnauthorized, "unauthorised")
	ErrUserAlreadyExists    = NewAPIError(http.StatusConflict, "user already exists")
	ErrUserNotFound         = NewAPIError(http.StatusNotFound, "user does not exist")
	ErrConfirmationFailed   = NewAPIError(http.StatusBadRequest, "email confirmation failed")
	ErrLoginFailed          = NewAPIError(http.StatusInternalServerError, "login failed")
	ErrRevokeFailed         = NewAPIError(http.StatusInternalServerError, "revoke failed")
	ErrRegistrationFailed   = NewAPIError(http.StatusInternalServerError, "registration failed")
	ErrInternalServerError  = NewAPIError(http.StatusInternalServerError, "internal server error")
	ErrMalformedRequestBody = NewAPIError(http.StatusBadRequest, "malformed request body")
	ErrMethodNotAllowed     = NewAPIError(http.StatusMethodNotAllowed, "method not allowed")
)

// ============================================================================
// Error parsing helpers (client side)
// ============================================================================

// parseErrorResponse extracts the embedded APIError from an error response
// body. Falls back to a generic error built from the status code when the
// body does not carry one.
func parseErrorResponse(statusCode int, body []byte) error {
	var envelope struct {
		Error *APIError `json:"apiError"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		return envelope.Error
	}

	return NewAPIError(statusCode, http.StatusText(statusCode))
}
