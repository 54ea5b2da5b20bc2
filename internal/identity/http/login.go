package http

import (
	"log/slog"
	"net/http"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Verify credentials and open a new session, returning a JWT access token and an opaque refresh token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.LoginRequest	true	"email and password"
//	@Success		200		{object}	identsdk.LoginResponse	"succeeded, email, securityToken, expiration, refreshToken"
//	@Failure		400		{object}	identsdk.LoginResponse	"apiError with validation detail"
//	@Failure		401		{object}	identsdk.LoginResponse	"apiError"
//	@Failure		500		{object}	identsdk.LoginResponse	"apiError"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeLoginError(w, identsdk.ErrMalformedRequestBody)
		return
	}

	res, err := h.SessionService.Login(ctx, req)
	if err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrLoginFailed)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("login failed", slog.Any("error", err))
		}
		writeLoginError(w, apiErr)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.LoginResponse{
		Succeeded:     true,
		Email:         res.Email,
		SecurityToken: res.Tokens.AccessToken,
		Expiration:    &res.Tokens.ExpiresAt,
		RefreshToken:  res.Tokens.RefreshToken,
	})
}

func writeLoginError(w http.ResponseWriter, apiErr *identsdk.APIError) {
	httpx.WriteJSON(w, apiErr.StatusCode, identsdk.LoginResponse{
		Succeeded: false,
		Error:     apiErr,
	})
}
