package httpx

import (
	"context"

	"github.com/cobaltlabs/userhub/pkg/jwtx"
)

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// ContextWithIdentity attaches the verified token payload to ctx. Identity is
// request-scoped: it is built fresh from the token on every request and never
// cached across requests.
func ContextWithIdentity(ctx context.Context, p jwtx.Payload) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, p)
}

// IdentityFromContext returns the authenticated caller's token payload.
func IdentityFromContext(ctx context.Context) (jwtx.Payload, bool) {
	p, ok := ctx.Value(ctxKeyIdentity).(jwtx.Payload)
	return p, ok
}
