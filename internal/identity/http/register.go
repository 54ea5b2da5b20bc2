package http

import (
	"log/slog"
	"net/http"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/slogx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Registration Step One Endpoint
//	@Description	Create an unconfirmed account and return a confirmation link carrying the userId, single-use token and email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.RegisterRequest	true	"names, email, password, optional dateOfBirth"
//	@Success		201		{object}	identsdk.RegisterResponse	"registrationStepOne, userId, confirmationEmailLink"
//	@Failure		400		{object}	identsdk.RegisterResponse	"apiError, errors"
//	@Failure		409		{object}	identsdk.RegisterResponse	"apiError - duplicate email"
//	@Failure		500		{object}	identsdk.RegisterResponse	"apiError"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.RegisterRequest
	if err := readJSON(r, &req); err != nil {
		writeRegisterError(w, identsdk.ErrMalformedRequestBody, nil)
		return
	}

	res, err := h.RegistrationService.RegisterStepOne(ctx, req)
	if err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrRegistrationFailed)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("registration failed", slog.Any("error", err))
		}
		writeRegisterError(w, apiErr, validationMessages(err))
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.RegisterResponse{
		RegistrationStepOne:   true,
		UserID:                res.UserID,
		ConfirmationEmailLink: res.ConfirmationLink,
	})
}

func writeRegisterError(w http.ResponseWriter, apiErr *identsdk.APIError, messages []string) {
	httpx.WriteJSON(w, apiErr.StatusCode, identsdk.RegisterResponse{
		RegistrationStepOne: false,
		Errors:              messages,
		Error:               apiErr,
	})
}
