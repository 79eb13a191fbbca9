package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/edunari/marketplace-api/internal/service"
)

// PioneerHandler handles early-access registration requests.
type PioneerHandler struct {
	pioneerService *service.PioneerService
	log            *slog.Logger
}

// NewPioneerHandler creates a new pioneer handler.
func NewPioneerHandler(pioneerService *service.PioneerService, log *slog.Logger) *PioneerHandler {
	return &PioneerHandler{
		pioneerService: pioneerService,
		log:            log,
	}
}

type pioneerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Register handles POST /api/pioneers
func (h *PioneerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req pioneerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	pioneer, err := h.pioneerService.Register(r.Context(), req.Name, req.Email, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPioneerFields):
			WriteError(w, http.StatusBadRequest, "Name and email are required", h.log)
		case errors.Is(err, service.ErrInvalidEmail):
			WriteError(w, http.StatusBadRequest, "Invalid email format", h.log)
		default:
			h.log.Error("pioneer registration failed", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	h.log.Info("pioneer registered", "id", pioneer.ID, "email", pioneer.Email)
	WriteJSON(w, http.StatusCreated, pioneer, h.log)
}

// List handles GET /api/pioneers
func (h *PioneerHandler) List(w http.ResponseWriter, r *http.Request) {
	pioneers, err := h.pioneerService.List(r.Context())
	if err != nil {
		h.log.Error("failed to list pioneers", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, pioneers, h.log)
}
