package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/httpx"
	"github.com/cobaltlabs/userhub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTokens() *jwtx.Service {
	return &jwtx.Service{
		Access:  jwtx.KeyConfig{Secret: "access", TTL: time.Minute},
		Refresh: jwtx.KeyConfig{Secret: "refresh", TTL: time.Hour},
	}
}

func protectedEcho(t *testing.T, tokens *jwtx.Service) (http.Handler, *bool) {
	t.Helper()
	handlerRan := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerRan = true
		identity, ok := httpx.IdentityFromContext(r.Context())
		require.True(t, ok)
		httpx.WriteSuccess(w, http.StatusOK, map[string]string{"userId": identity.UserID})
	})
	return httpx.Chain(h, httpx.Authn(tokens)), &handlerRan
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
	return body
}

func TestAuthnMissingHeader(t *testing.T) {
	t.Parallel()

	h, ran := protectedEcho(t, newTokens())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *ran)
	body := decodeError(t, rec)
	require.Equal(t, apierr.CodeMissingAuthHeader, body["errorCode"])
}

func TestAuthnRejectsBadTokens(t *testing.T) {
	t.Parallel()

	tokens := newTokens()
	h, ran := protectedEcho(t, tokens)

	refresh, err := tokens.Issue(jwtx.KindRefresh, jwtx.Payload{UserID: "U0001"})
	require.NoError(t, err)

	for name, header := range map[string]string{
		"no token after scheme": "Bearer",
		"garbage token":         "Bearer garbage",
		"refresh token":         "Bearer " + refresh,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			require.Equal(t, apierr.CodeVerifyAccessToken, body["errorCode"])
		})
	}
	require.False(t, *ran)
}

func TestAuthnAttachesIdentity(t *testing.T) {
	t.Parallel()

	tokens := newTokens()
	h, ran := protectedEcho(t, tokens)

	access, err := tokens.Issue(jwtx.KindAccess, jwtx.Payload{UserID: "U0001", LastName: "Sato", Age: 34})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *ran)

	var body struct {
		Status     string            `json:"status"`
		StatusCode int               `json:"statusCode"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "success", body.Status)
	require.Equal(t, "U0001", body.Data["userId"])
}
