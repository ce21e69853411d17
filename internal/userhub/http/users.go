package http

import (
	"net/http"

	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/httpx"
)

// UsersHandler serves the admin user listing. Presence and validity of the
// query parameters are judged by the service so the handler only has to
// distinguish absent from present-but-empty.
type UsersHandler struct {
	Users *service.UserService
}

func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		httpx.WriteError(w, apierr.Unauthenticated())
		return
	}

	query := r.URL.Query()
	params := service.ListParams{}
	if query.Has("limit") {
		v := query.Get("limit")
		params.Limit = &v
	}
	if query.Has("currentPage") {
		v := query.Get("currentPage")
		params.CurrentPage = &v
	}
	if query.Has("sortField") {
		v := query.Get("sortField")
		params.SortField = &v
	}
	if query.Has("sortType") {
		v := query.Get("sortType")
		params.SortType = &v
	}

	page, err := h.Users.ListUsers(ctx, identity.UserID, params)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, page)
}
