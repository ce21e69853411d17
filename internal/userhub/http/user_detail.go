package http

import (
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/domain"
	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/httpx"
)

type userDetailResponse struct {
	User *domain.UserDetail `json:"user"`
}

// UserDetailHandler returns one user with its roles aggregated. Any active
// account may look up any user; no role is required.
type UserDetailHandler struct {
	Users *service.UserService
}

func (h *UserDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, apierr.Unauthenticated())
		return
	}

	detail, err := h.Users.UserDetail(ctx, identity.UserID, r.PathValue("userId"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, userDetailResponse{User: detail})
}
