// Package errs carries the status code and caller-facing message of a
// failed request from the services to the HTTP boundary.
package errs

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func Validation(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadRequest, Message: msg}
}

func Auth(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusUnauthorized, Message: msg}
}

func NotFound(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusNotFound, Message: msg}
}

// Conflict is reported as 400, the status existing clients expect for a
// second admin registration.
func Conflict(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusBadRequest, Message: msg}
}

func Internal(msg string) *HTTPError {
	return &HTTPError{StatusCode: http.StatusInternalServerError, Message: msg}
}

// From returns err as an *HTTPError if it is one, otherwise fallback.
// Driver and library errors never reach the caller this way.
func From(err error, fallback *HTTPError) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	return fallback
}
