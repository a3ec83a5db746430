package handlers

import (
	"net/http"
	"strconv"

	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"

	"github.com/go-chi/chi/v5"
)

// CatalogService defines the catalog operations handlers need
type CatalogService interface {
	BrowseProducts(filters repositories.ProductSearchFilters) ([]*models.Product, int, error)
	GetProduct(id int) (*repositories.ProductWithVariants, error)
}

// CatalogHandler serves the public product catalog
type CatalogHandler struct {
	catalogService CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts returns active products, filterable by category and name
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters := repositories.ProductSearchFilters{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Limit:    parseIntParam(r.URL.Query().Get("limit"), 20),
		Offset:   parseIntParam(r.URL.Query().Get("offset"), 0),
	}

	products, total, err := h.catalogService.BrowseProducts(filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if products == nil {
		products = []*models.Product{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
	})
}

// GetProduct returns a single product with its variants
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func parseIntParam(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
