// Package http wires the REST surface: one handler file per endpoint, routes
// registered on a method-pattern ServeMux, middleware chained per route.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cobaltlabs/userhub/internal/userhub/service"
	"github.com/cobaltlabs/userhub/internal/userhub/store"
	"github.com/cobaltlabs/userhub/pkg/httpx"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
	"github.com/cobaltlabs/userhub/pkg/slogx"
)

// APIPrefix is the common path prefix for every business route. System
// probes live outside it.
const APIPrefix = "/api/v1"

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	tokens       *jwtx.Service
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	tokens *jwtx.Service,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	signIn := &SignInHandler{Auth: r.AuthService}
	signUp := &SignUpHandler{Auth: r.AuthService}
	refresh := &RefreshTokenHandler{Auth: r.AuthService}

	// Credential endpoints take the strict limit keyed by IP; nothing about
	// the caller is trusted yet.
	r.Mux.Handle("POST "+APIPrefix+"/auth/sign-in",
		httpx.Chain(signIn,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST "+APIPrefix+"/auth/refresh-token",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST "+APIPrefix+"/auth/sign-up",
		httpx.Chain(signUp,
			httpx.Authn(r.tokens),
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerUsers() {
	users := &UsersHandler{Users: r.UserService}
	detail := &UserDetailHandler{Users: r.UserService}

	r.Mux.Handle("GET "+APIPrefix+"/users",
		httpx.Chain(users,
			httpx.Authn(r.tokens),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET "+APIPrefix+"/users/{userId}",
		httpx.Chain(detail,
			httpx.Authn(r.tokens),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.HandleFunc("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.HandleFunc("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
