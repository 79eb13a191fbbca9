package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/edunari/marketplace-api/internal/models"
	"github.com/edunari/marketplace-api/internal/search"
	"github.com/edunari/marketplace-api/internal/service"
)

// CatalogHandler handles catalog-related HTTP requests: status, search, and
// listings by category.
type CatalogHandler struct {
	service *service.CatalogService
	log     *slog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *service.CatalogService, log *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

// Status handles GET /api/status
func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Status(r.Context())
	if err != nil {
		h.log.Error("failed to load catalog status", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, status, h.log)
}

// Search handles GET /api/search
// Query parameters: q, productCategory, serviceCategory, sort (none|asc|desc),
// page (1-based).
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	state := searchStateFromRequest(r)

	result, err := h.service.Search(r.Context(), state)
	if err != nil {
		h.log.Error("search failed", "error", err, "query", state.Query)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	h.log.Info("search completed",
		"query", state.Query,
		"total", result.Total,
		"page", result.Page,
	)
	WriteJSON(w, http.StatusOK, result, h.log)
}

func searchStateFromRequest(r *http.Request) search.State {
	q := r.URL.Query()

	state := search.NewState()
	state.SetQuery(q.Get("q"))
	if category := q.Get("productCategory"); category != "" {
		state.SetProductCategory(category)
	} else if category := q.Get("serviceCategory"); category != "" {
		state.SetServiceCategory(category)
	}
	state.Sort = search.ParseSortOrder(q.Get("sort"))

	// Page last: the setters above reset it to 1.
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 1 {
		state.Page = page
	}

	return state
}

// ListProducts handles GET /api/products
// Optional query parameters: category (exact match), limit.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.writeListings(w, r, h.service.Products)
}

// ListServices handles GET /api/services
// Optional query parameters: category (exact match), limit.
func (h *CatalogHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	h.writeListings(w, r, h.service.Services)
}

func (h *CatalogHandler) writeListings(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(ctx context.Context, category string, limit int) ([]models.Listing, error),
) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	listings, err := fetch(r.Context(), q.Get("category"), limit)
	if err != nil {
		h.log.Error("failed to list catalog entries", "error", err, "path", r.URL.Path)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, listings, h.log)
}

// ListEntrepreneurs handles GET /api/entrepreneurs
func (h *CatalogHandler) ListEntrepreneurs(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.service.Entrepreneurs(r.Context())
	if err != nil {
		h.log.Error("failed to list entrepreneurs", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, businesses, h.log)
}
