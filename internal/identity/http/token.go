package http

import (
	"log/slog"
	"net/http"

	"github.com/stallworks/identity/internal/identity/service"
	"github.com/stallworks/identity/pkg/httpx"
	"github.com/stallworks/identity/pkg/identsdk"
	"github.com/stallworks/identity/pkg/slogx"
)

type RefreshHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Token Refresh Endpoint
//	@Description	Exchange an expired access token plus its matching refresh token for a new pair. The refresh token is rotated
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.RefreshTokenRequest	true	"accessToken and refreshToken"
//	@Success		200		{object}	identsdk.RefreshTokenResponse	"succeeded, jwtToken, expiration, refreshToken"
//	@Failure		401		{object}	identsdk.RefreshTokenResponse	"apiError"
//	@Failure		500		{object}	identsdk.RefreshTokenResponse	"apiError"
//	@Router			/v1/auth/token/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.RefreshTokenRequest
	if err := readJSON(r, &req); err != nil {
		writeRefreshError(w, identsdk.ErrMalformedRequestBody)
		return
	}

	pair, err := h.SessionService.Refresh(ctx, req.AccessToken, req.RefreshToken)
	if err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrInternalServerError)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("token refresh failed", slog.Any("error", err))
		}
		writeRefreshError(w, apiErr)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.RefreshTokenResponse{
		Succeeded:    true,
		JWTToken:     pair.AccessToken,
		Expiration:   &pair.ExpiresAt,
		RefreshToken: pair.RefreshToken,
	})
}

func writeRefreshError(w http.ResponseWriter, apiErr *identsdk.APIError) {
	httpx.WriteJSON(w, apiErr.StatusCode, identsdk.RefreshTokenResponse{
		Succeeded: false,
		Error:     apiErr,
	})
}

type RevokeHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Token Revoke Endpoint
//	@Description	Revoke the session matching the presented refresh token. Requires both the access token and the session's refresh token
//	@Tags			Tokens
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identsdk.RevokeTokenRequest		true	"accessToken and refreshToken"
//	@Success		200		{object}	identsdk.RevokeTokenResponse	"succeeded"
//	@Failure		401		{object}	identsdk.RevokeTokenResponse	"apiError"
//	@Failure		500		{object}	identsdk.RevokeTokenResponse	"apiError"
//	@Router			/v1/auth/token/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identsdk.RevokeTokenRequest
	if err := readJSON(r, &req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, identsdk.RevokeTokenResponse{
			Succeeded: false,
			Error:     identsdk.ErrMalformedRequestBody,
		})
		return
	}

	if err := h.SessionService.Revoke(ctx, req.AccessToken, req.RefreshToken); err != nil {
		apiErr := apiErrorFor(err, identsdk.ErrRevokeFailed)
		if apiErr.StatusCode == http.StatusInternalServerError {
			log.Error("token revocation failed", slog.Any("error", err))
		}
		httpx.WriteJSON(w, apiErr.StatusCode, identsdk.RevokeTokenResponse{
			Succeeded: false,
			Error:     apiErr,
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.RevokeTokenResponse{Succeeded: true})
}
