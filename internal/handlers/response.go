package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/logger"
)

type successEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	respondJSON(w, status, successEnvelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps service errors to their HTTP shape. Anything that
// is not an application error is logged and returned as an opaque 500.
func respondError(log *logger.Logger, w http.ResponseWriter, err error) {
	if appErr := apperror.From(err); appErr != nil {
		apperror.Write(w, appErr)
		return
	}

	log.Error("Unhandled error: %v", err)
	apperror.Write(w, apperror.Internal())
}

// HealthCheck reports liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
