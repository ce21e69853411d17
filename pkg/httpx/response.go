package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/cobaltlabs/userhub/pkg/apierr"
	"github.com/cobaltlabs/userhub/pkg/slogx"
)

type successEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
}

type errorEnvelope struct {
	Status string `json:"status"`
	*apierr.Error

	// ErrorException is only set by the recovery path when the error
	// handling itself failed; it marks the exception envelope variant.
	ErrorException string `json:"errorException,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes the success envelope {status, statusCode, data}.
func WriteSuccess(w http.ResponseWriter, code int, data any) {
	WriteJSON(w, code, successEnvelope{Status: "success", StatusCode: code, Data: data})
}

// WriteError normalizes err into the error envelope. Every failure path in
// every handler funnels through here so the response shape never varies.
func WriteError(w http.ResponseWriter, err error) {
	apiErr := apierr.From(err)
	WriteJSON(w, apiErr.StatusCode, errorEnvelope{Status: "error", Error: apiErr})
}

// Recover converts handler panics into the exception envelope variant so the
// error pipeline itself can never take down a request without a response.
func Recover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				slogx.FromContext(r.Context()).Error("handler panic", "panic", rec)

				apiErr := apierr.Internal(nil)
				WriteJSON(w, apiErr.StatusCode, errorEnvelope{
					Status:         "error",
					Error:          apiErr,
					ErrorException: "unhandled exception while processing request",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
