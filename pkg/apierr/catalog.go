package apierr

import "net/http"

// Stable error codes. The numbering is part of the public API contract;
// clients branch on these, so codes must never be reused or renumbered.
const (
	CodeMissingEnv          = "E00001"
	CodeSignAccessToken     = "E00002"
	CodeSignRefreshToken    = "E00003"
	CodeMissingAuthHeader   = "E00004"
	CodeVerifyAccessToken   = "E00005"
	CodeQueryIdentityByID   = "E00006"
	CodeUnauthenticated     = "E00007"
	CodeAccountUnavailable  = "E00008"
	CodeMissingRefreshToken = "E00009"
	CodeVerifyRefreshToken  = "E00010"
	CodeMissingSignInField  = "E00011"
	CodeQueryCredentials    = "E00012"
	CodeMissingListParam    = "E00013"
	CodeInvalidListParam    = "E00014"
	CodeQueryRoles          = "E00015"
	CodeForbiddenRole       = "E00016"
	CodeQueryCountUsers     = "E00017"
	CodePagination          = "E00018"
	CodeQueryUsers          = "E00019"
	CodeNoData              = "E00020"
	CodeMissingPathParam    = "E00021"
	CodeQueryUserDetail     = "E00022"
	CodeUnexpected          = "E9999"
)

// MissingEnv reports a required configuration value that is absent at first
// use. envName is the variable the operator must set.
func MissingEnv(functionName, envName string) *Error {
	return New(http.StatusBadRequest, CodeMissingEnv,
		"The environment variable '"+envName+"' does not exist.").
		WithParams(envName).
		WithDetail(functionName, []string{envName},
			"The environment variable '"+envName+"' does not exist or has no data.")
}

// Unauthenticated is the single caller-visible rejection for both "no such
// user" and "wrong password"; the two must stay indistinguishable.
func Unauthenticated() *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, "Unable to authenticate user!")
}

// AccountUnavailable reports a deactivated account (delete flag set).
func AccountUnavailable() *Error {
	return New(http.StatusUnauthorized, CodeAccountUnavailable,
		"The current user account is unavailable.")
}

// NoData reports an empty result set on a fetch that requires data.
func NoData(params ...string) *Error {
	return New(http.StatusNotFound, CodeNoData, "No Data.").WithParams(params...)
}

// Repository wraps a data-access failure. code selects the per-call-site
// query error code; the cause goes into the detail record only.
func Repository(code, functionName string, params []string, cause error) *Error {
	return New(http.StatusInternalServerError, code, "Error during database query.").
		WithDetail(functionName, params, cause.Error())
}

// Internal is the catch-all for unexpected failures.
func Internal(cause error) *Error {
	e := New(http.StatusInternalServerError, CodeUnexpected, "Internal Server Error")
	if cause != nil {
		e = e.WithDetail("unknown", nil, cause.Error())
	}
	return e
}
