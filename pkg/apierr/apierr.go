// Package apierr defines the machine-readable error contract shared by every
// handler and service. Each error carries an HTTP status, a stable error code
// and a list of human messages; validation paths collect multiple messages
// into a single error instead of failing on the first violation.
package apierr

import (
	"errors"
	"strings"
)

// Detail records where an error originated for observability. It is part of
// the wire contract and safe to expose: it never contains secrets.
type Detail struct {
	FunctionName string   `json:"functionName"`
	Params       []string `json:"params"`
	ErrorMessage string   `json:"errorMessage"`
}

// Error is the discriminated error type propagated up the call chain.
type Error struct {
	StatusCode int      `json:"statusCode"`
	Code       string   `json:"errorCode"`
	Messages   []string `json:"errorMessages"`
	Params     []string `json:"errorParams,omitempty"`
	Details    []Detail `json:"errorDetails,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + strings.Join(e.Messages, "; ")
}

// New builds an Error with the given HTTP status, code and messages.
func New(statusCode int, code string, messages ...string) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       code,
		Messages:   messages,
	}
}

// WithParams attaches the request parameters that caused the error.
func (e *Error) WithParams(params ...string) *Error {
	e.Params = append(e.Params, params...)
	return e
}

// WithDetail appends an origin record to the error.
func (e *Error) WithDetail(functionName string, params []string, message string) *Error {
	e.Details = append(e.Details, Detail{
		FunctionName: functionName,
		Params:       params,
		ErrorMessage: message,
	})
	return e
}

// From normalizes any error into an *Error. Unknown errors become the generic
// internal error so the response envelope shape never varies.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}
