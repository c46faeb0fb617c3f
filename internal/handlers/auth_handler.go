package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Varun5711/taskboard/internal/apperror"
	"github.com/Varun5711/taskboard/internal/logger"
	"github.com/Varun5711/taskboard/internal/middleware"
	"github.com/Varun5711/taskboard/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         logger.New("auth-handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, apperror.NewValidation("Invalid request body"))
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "User registered successfully", result)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(h.log, w, apperror.NewValidation("Invalid request body"))
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Login successful", result)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		respondError(h.log, w, apperror.NewAuthentication("User not authenticated"))
		return
	}

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		respondError(h.log, w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "User fetched successfully", map[string]interface{}{
		"user": user,
	})
}
