package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stallworks/identity/internal/identity/domain"
	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/pkg/identsdk"
)

// apiErrorFor maps a service error to the structured APIError embedded in
// response bodies. Anything unrecognised collapses into the fallback, which
// carries the endpoint-specific 500 message.
func apiErrorFor(err error, fallback *identsdk.APIError) *identsdk.APIError {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return identsdk.NewValidationError(verr.Messages)
	}

	var rbErr *service.RollbackError
	if errors.As(err, &rbErr) {
		if rbErr.Outcome == domain.FatallyInconsistent {
			return identsdk.ErrRegistrationFailed.WithDetail("account state inconsistent, manual cleanup required")
		}
		return identsdk.ErrRegistrationFailed
	}

	switch {
	case errors.Is(err, service.ErrUserDoesNotExist):
		return identsdk.ErrUserDoesNotExist
	case errors.Is(err, service.ErrInvalidCredentials):
		return identsdk.ErrInvalidCredentials
	case errors.Is(err, service.ErrEmailNotConfirmed):
		return identsdk.ErrEmailNotConfirmed
	case errors.Is(err, service.ErrUnauthorised):
		return identsdk.ErrUnauthorised
	case errors.Is(err, service.ErrUserAlreadyExists):
		return identsdk.ErrUserAlreadyExists
	case errors.Is(err, service.ErrUserNotFound):
		return identsdk.ErrUserNotFound
	case errors.Is(err, service.ErrConfirmationFailed):
		return identsdk.ErrConfirmationFailed
	default:
		return fallback
	}
}

// validationMessages extracts the per-field messages when err is a
// validation failure, for endpoints whose wire shape carries an errors list.
func validationMessages(err error) []string {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return verr.Messages
	}
	return nil
}

// readJSON decodes the request body into dst.
func readJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
