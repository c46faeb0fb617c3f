package apperror

import (
	"encoding/json"
	"net/http"
)

// Write serializes an *Error as the wire shape every error response
// uses: {"error": kind, "message": ..., "statusCode": n}.
func Write(w http.ResponseWriter, appErr *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}

// Internal is the opaque 500 sent for anything unclassified. The real
// error is logged server-side, never leaked to the client.
func Internal() *Error {
	return &Error{
		Kind:       "Internal Server Error",
		Message:    "An unexpected error occurred",
		StatusCode: http.StatusInternalServerError,
	}
}
