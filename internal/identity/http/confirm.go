package http

import (
	"log/slog"
	"net/http"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/slogx"
)

// ConfirmEmailHandler and CompleteRegistrationHandler verify the same
// single-use confirmation token through the one service primitive; only the
// acknowledgement shapes differ.

type ConfirmEmailHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Confirm Email Endpoint
//	@Description	Present a confirmation token to flip the account's email-confirmed flag. Tokens are single use
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.ConfirmEmailRequest	true	"userId and token from the confirmation link"
//	@Success		200		{object}	identsdk.ConfirmEmailResponse	"userId, email, confirmationCode"
//	@Failure		400		{object}	identsdk.ConfirmEmailResponse	"apiError - bad or used token"
//	@Failure		404		{object}	identsdk.ConfirmEmailResponse	"apiError - unknown user"
//	@Router			/v1/auth/confirm-email [post].
func (h *ConfirmEmailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.ConfirmEmailRequest
	if err := readJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, identsdk.ConfirmEmailResponse{
			Error: identsdk.ErrMalformedRequestBody,
		})
		return
	}

	if err := h.RegistrationService.ConfirmEmail(ctx, req); err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrInternalServerError)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("email confirmation failed", slog.Any("error", err))
		}
		httpx.WriteJSON(w, apiErr.StatusCode, identsdk.ConfirmEmailResponse{
			UserID: req.UserID,
			Error:  apiErr,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.ConfirmEmailResponse{
		UserID:           req.UserID,
		Email:            req.Email,
		ConfirmationCode: identsdk.ConfirmationCodeEmailConfirmed,
	})
}

type CompleteRegistrationHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Registration Step Two Endpoint
//	@Description	Alias of the email confirmation flow kept for wire compatibility; acknowledges with RegistrationComplete
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.CompleteRegistrationRequest	true	"userId, email and token"
//	@Success		200		{object}	identsdk.CompleteRegistrationResponse	"userId, registrationStepTwo, confirmationCode"
//	@Failure		400		{object}	identsdk.CompleteRegistrationResponse	"apiError - bad or used token"
//	@Failure		404		{object}	identsdk.CompleteRegistrationResponse	"apiError - unknown user"
//	@Router			/v1/auth/register/complete [post].
func (h *CompleteRegistrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.CompleteRegistrationRequest
	if err := readJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, identsdk.CompleteRegistrationResponse{
			RegistrationStepTwo: false,
			Error:               identsdk.ErrMalformedRequestBody,
		})
		return
	}

	if err := h.RegistrationService.CompleteRegistration(ctx, req); err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrInternalServerError)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("registration completion failed", slog.Any("error", err))
		}
		httpx.WriteJSON(w, apiErr.StatusCode, identsdk.CompleteRegistrationResponse{
			UserID:              req.UserID,
			RegistrationStepTwo: false,
			Errors:              validationMessages(err),
			Error:               apiErr,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.CompleteRegistrationResponse{
		UserID:              req.UserID,
		RegistrationStepTwo: true,
		ConfirmationCode:    identsdk.ConfirmationCodeRegistrationComplete,
	})
}
