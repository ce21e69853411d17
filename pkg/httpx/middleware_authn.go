package httpx

import (
	"net/http"
	"strings"

	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
	"github.com/cobaltlabs/userhub/pkg/slogx"
)

// AccessVerifier verifies a raw token of the given kind.
type AccessVerifier interface {
	Verify(kind jwtx.Kind, raw string) (*jwtx.Claims, error)
}

// Authn gates protected routes. It reads the Authorization header, verifies
// the bearer token as an access token and attaches the resolved identity to
// the request context. On any failure the handler never runs.
func Authn(v AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authz := r.Header.Get("Authorization")
			if authz == "" {
				WriteError(w, apierr.New(http.StatusUnauthorized,
					apierr.CodeMissingAuthHeader, "Missing Authorization header.").
					WithParams("Authorization").
					WithDetail("Authn", []string{"Authorization"},
						"Bearer token is not passed in request header."))
				return
			}

			// The token is the text after the first space ("Bearer <token>").
			var raw string
			if _, after, found := strings.Cut(authz, " "); found {
				raw = after
			}

			claims, err := v.Verify(jwtx.KindAccess, raw)
			if err != nil {
				slogx.FromContext(ctx).Warn("access token rejected", "err", err)
				WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, claims.Payload)))
		})
	}
}
