package jwtx_test

import (
	"testing"
	"time"

	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newService() *jwtx.Service {
	return &jwtx.Service{
		Issuer:  "userhub-test",
		Access:  jwtx.KeyConfig{Secret: "access-secret", TTL: time.Minute},
		Refresh: jwtx.KeyConfig{Secret: "refresh-secret", TTL: time.Hour},
	}
}

var payload = jwtx.Payload{UserID: "U0001", LastName: "Sato", Age: 34, DeleteFlg: 0}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newService()

	for _, kind := range []jwtx.Kind{jwtx.KindAccess, jwtx.KindRefresh} {
		raw, err := svc.Issue(kind, payload)
		require.NoError(t, err)
		require.NotEmpty(t, raw)

		claims, err := svc.Verify(kind, raw)
		require.NoError(t, err)
		require.Equal(t, payload, claims.Payload)
		require.Equal(t, string(kind), claims.TokenKind)
		require.Equal(t, "userhub-test", claims.Issuer)
	}
}

func TestVerifyRejectsCrossKindTokens(t *testing.T) {
	t.Parallel()

	svc := newService()

	access, err := svc.Issue(jwtx.KindAccess, payload)
	require.NoError(t, err)
	refresh, err := svc.Issue(jwtx.KindRefresh, payload)
	require.NoError(t, err)

	_, err = svc.Verify(jwtx.KindRefresh, access)
	require.Equal(t, apierr.CodeVerifyRefreshToken, apierr.From(err).Code)

	_, err = svc.Verify(jwtx.KindAccess, refresh)
	require.Equal(t, apierr.CodeVerifyAccessToken, apierr.From(err).Code)
}

func TestVerifyRejectsCrossKindEvenWithSharedSecret(t *testing.T) {
	t.Parallel()

	// Misconfigured deployments may reuse one secret for both kinds; the
	// embedded kind marker must still keep the token spaces disjoint.
	svc := &jwtx.Service{
		Access:  jwtx.KeyConfig{Secret: "shared", TTL: time.Minute},
		Refresh: jwtx.KeyConfig{Secret: "shared", TTL: time.Hour},
	}

	access, err := svc.Issue(jwtx.KindAccess, payload)
	require.NoError(t, err)

	_, err = svc.Verify(jwtx.KindRefresh, access)
	require.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	svc := newService()
	svc.Access.TTL = -time.Minute

	raw, err := svc.Issue(jwtx.KindAccess, payload)
	require.NoError(t, err)

	_, err = svc.Verify(jwtx.KindAccess, raw)
	apiErr := apierr.From(err)
	require.Equal(t, apierr.CodeVerifyAccessToken, apiErr.Code)
	require.Equal(t, 401, apiErr.StatusCode)
	require.Contains(t, apiErr.Details[0].ErrorMessage, "expired")
}

func TestVerifyRejectsEmptyAndMalformedTokens(t *testing.T) {
	t.Parallel()

	svc := newService()

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(jwtx.KindAccess, raw)
		apiErr := apierr.From(err)
		require.Equal(t, apierr.CodeVerifyAccessToken, apiErr.Code)
		require.Equal(t, 401, apiErr.StatusCode)
	}
}

func TestIssueRequiresConfiguration(t *testing.T) {
	t.Parallel()

	t.Run("missing secret", func(t *testing.T) {
		svc := newService()
		svc.Access.Secret = ""

		_, err := svc.Issue(jwtx.KindAccess, payload)
		apiErr := apierr.From(err)
		require.Equal(t, apierr.CodeMissingEnv, apiErr.Code)
		require.Equal(t, []string{jwtx.EnvAccessSecret}, apiErr.Params)
	})

	t.Run("missing ttl", func(t *testing.T) {
		svc := newService()
		svc.Refresh.TTL = 0

		_, err := svc.Issue(jwtx.KindRefresh, payload)
		apiErr := apierr.From(err)
		require.Equal(t, apierr.CodeMissingEnv, apiErr.Code)
		require.Equal(t, []string{jwtx.EnvRefreshExpiresIn}, apiErr.Params)
	})
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	svc := newService()
	raw, err := svc.Issue(jwtx.KindAccess, payload)
	require.NoError(t, err)

	tampered := raw[:len(raw)-2] + "xx"
	_, err = svc.Verify(jwtx.KindAccess, tampered)
	require.Error(t, err)
}
