package handler

import (
	"log/slog"
	"net/http"

	"github.com/muaz-405/DevQuest/internal/service"
)

// CatalogHandler serves the seeded category and badge catalogs.
type CatalogHandler struct {
	catalogService *service.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

// HandleListCategories returns all discussion categories.
//
// HTTP: GET /api/categories
func (h *CatalogHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// HandleListBadges returns the badge catalog.
//
// HTTP: GET /api/badges
func (h *CatalogHandler) HandleListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.catalogService.ListBadges(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}
