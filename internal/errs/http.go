// Package errs defines the error taxonomy surfaced to API callers.
//
// Every failure a caller can observe is an *HTTPError carrying a status
// code and a short plain-text reason. Handlers and services return these
// values; the global error handler turns them into responses.
package errs

import (
	"net/http"
	"strings"
)

// HTTPError is the error type for API responses.
//
//   - Code: machine-friendly error code (e.g. "NOT_FOUND"), used in logs.
//   - Message: the plain-text reason written to the client.
//   - Status: HTTP status code.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. Only the type is
// compared, so errors.Is(err, &HTTPError{}) answers "is this a caller-facing
// error at all".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// IsServerError reports whether the error represents an unexpected failure.
func (e *HTTPError) IsServerError() bool {
	return e.Status >= http.StatusInternalServerError
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func codeFor(status int, code *string) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}
