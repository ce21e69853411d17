package http

import (
	"encoding/json"
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/pkg/httpx"
)

type refreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenHandler mints a new access token from a valid refresh token.
// The presented refresh token is returned unchanged.
type RefreshTokenHandler struct {
	Auth *service.AuthService
}

func (h *RefreshTokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pair, err := h.Auth.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, pair)
}
