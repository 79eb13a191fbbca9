package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/edunari/marketplace-api/internal/models"
	"github.com/edunari/marketplace-api/internal/repository"
	"github.com/edunari/marketplace-api/internal/service"
)

// AuthHandler handles account-related HTTP requests.
type AuthHandler struct {
	authService *service.AuthService
	log         *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *models.User `json:"user,omitempty"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Invalid request body"}, h.log)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Email and password are required"}, h.log)
		case errors.Is(err, service.ErrInvalidCredentials):
			h.log.Info("login failed", "email", req.Email)
			WriteJSON(w, http.StatusUnauthorized, authResponse{Message: "Invalid email or password"}, h.log)
		default:
			h.log.Error("login error", "error", err)
			WriteJSON(w, http.StatusInternalServerError, authResponse{Message: "Internal server error"}, h.log)
		}
		return
	}

	h.log.Info("login successful", "email", user.Email)
	WriteJSON(w, http.StatusOK, authResponse{
		Success: true,
		Message: "Authentication successful",
		User:    user,
	}, h.log)
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Invalid request body"}, h.log)
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Email and password are required"}, h.log)
		case errors.Is(err, service.ErrInvalidEmail):
			WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Invalid email format"}, h.log)
		case errors.Is(err, service.ErrWeakPassword):
			WriteJSON(w, http.StatusBadRequest, authResponse{Message: "Password must be at least 6 characters"}, h.log)
		case errors.Is(err, service.ErrEmailTaken):
			WriteJSON(w, http.StatusConflict, authResponse{Message: "An account with this email already exists"}, h.log)
		default:
			h.log.Error("register error", "error", err)
			WriteJSON(w, http.StatusInternalServerError, authResponse{Message: "Internal server error"}, h.log)
		}
		return
	}

	h.log.Info("user registered", "email", user.Email)
	WriteJSON(w, http.StatusCreated, authResponse{
		Success: true,
		Message: "User registered successfully",
		User:    user,
	}, h.log)
}

// CheckUser handles GET /api/auth/check-user?email=...
func (h *AuthHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		WriteError(w, http.StatusBadRequest, "Email is required", h.log)
		return
	}

	exists, err := h.authService.CheckUser(r.Context(), email)
	if err != nil {
		h.log.Error("check-user error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"exists": exists}, h.log)
}

// Profile handles GET /api/auth/profile?email=...
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		WriteError(w, http.StatusBadRequest, "Email is required", h.log)
		return
	}

	user, err := h.authService.Profile(r.Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			WriteError(w, http.StatusNotFound, "User not found", h.log)
			return
		}
		h.log.Error("profile error", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse{Success: true, User: user}, h.log)
}
