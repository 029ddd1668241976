package errs

import (
	"net/http"
)

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusUnauthorized, nil),
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional; nil defaults to "BAD_REQUEST".
func NewBadRequestError(message string, code *string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusBadRequest, code),
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// code is optional; nil defaults to "NOT_FOUND".
func NewNotFoundError(message string, code *string) *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusNotFound, code),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusMethodNotAllowed, nil),
		Message: http.StatusText(http.StatusMethodNotAllowed),
		Status:  http.StatusMethodNotAllowed,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic status text; the underlying cause is
// logged, never sent.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    codeFor(http.StatusInternalServerError, nil),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}
