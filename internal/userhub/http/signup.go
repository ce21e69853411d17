package http

import (
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/pkg/httpx"
)

// SignUpHandler is the reserved registration endpoint. It sits behind the
// authentication gate like the other protected routes but carries no
// business logic yet.
type SignUpHandler struct {
	Auth *service.AuthService
}

func (h *SignUpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.SignUp(r.Context()); err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, nil)
}
