package http

import (
	"encoding/json"
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/pkg/httpx"
)

type signInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInHandler exchanges a username and password for a token pair.
type SignInHandler struct {
	Auth *service.AuthService
}

func (h *SignInHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// An unreadable body validates the same as an empty one, so both
	// missing-field messages still come back together.
	var req signInRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	pair, err := h.Auth.SignIn(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, pair)
}
