package httpx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorUsesEnvelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, apierr.NoData("U0001"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
	require.Equal(t, apierr.CodeNoData, body["errorCode"])
	require.Equal(t, []any{"No Data."}, body["errorMessages"])
	require.Equal(t, []any{"U0001"}, body["errorParams"])
}

func TestWriteErrorNormalizesUnknownErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	httpx.WriteError(rec, errors.New("driver exploded"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, apierr.CodeUnexpected, body["errorCode"])
}

func TestRecoverWrapsPanics(t *testing.T) {
	t.Parallel()

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), httpx.Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "error", body["status"])
	require.Equal(t, apierr.CodeUnexpected, body["errorCode"])
	require.NotEmpty(t, body["errorException"])
}
