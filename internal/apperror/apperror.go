package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the application error type services return and the HTTP
// boundary maps to a status code. Anything that is not an *Error
// becomes an opaque 500 at the boundary.
type Error struct {
	Kind       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewValidation(message string) *Error {
	return &Error{
		Kind:       "ValidationError",
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewAuthentication(message string) *Error {
	if message == "" {
		message = "Unauthorized"
	}
	return &Error{
		Kind:       "AuthenticationError",
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewAuthorization(message string) *Error {
	if message == "" {
		message = "Forbidden"
	}
	return &Error{
		Kind:       "AuthorizationError",
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewNotFound(resource string) *Error {
	return &Error{
		Kind:       "NotFoundError",
		Message:    resource + " not found",
		StatusCode: http.StatusNotFound,
	}
}

// From extracts an *Error from an error chain, or nil.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func IsValidation(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

func IsAuthentication(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

func IsAuthorization(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	appErr := From(err)
	return appErr != nil && appErr.StatusCode == status
}
