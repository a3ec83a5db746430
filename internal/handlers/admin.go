package handlers

import (
	"net/http"
	"strconv"

	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"

	"github.com/go-chi/chi/v5"
)

// AdminCatalogService defines the catalog administration operations
type AdminCatalogService interface {
	CreateProduct(req *models.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(id int, req *models.ProductUpdateRequest) (*models.Product, error)
	DeleteProduct(id int) error
	ListProducts(filters repositories.ProductSearchFilters) ([]*models.Product, int, error)
	GetProductWithVariants(id int) (*repositories.ProductWithVariants, error)
	CreateVariant(productID int, req *models.VariantCreateRequest) (*models.ProductVariant, error)
	UpdateVariant(id int, req *models.VariantUpdateRequest) (*models.ProductVariant, error)
	DeleteVariant(id int) error
}

// AdminUserService defines the user administration operations
type AdminUserService interface {
	ListUsers(filters repositories.UserSearchFilters) ([]*models.User, error)
	SuspendUser(id int) error
	ActivateUser(id int) error
}

// AdminHandler serves the back-office routes. All routes require an admin
// user; the router enforces that.
type AdminHandler struct {
	catalogService  AdminCatalogService
	checkoutService CheckoutService
	userService     AdminUserService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(catalogService AdminCatalogService, checkoutService CheckoutService, userService AdminUserService) *AdminHandler {
	return &AdminHandler{
		catalogService:  catalogService,
		checkoutService: checkoutService,
		userService:     userService,
	}
}

// Product management

// ListProducts returns all products, including inactive ones
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters := repositories.ProductSearchFilters{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Limit:    parseIntParam(r.URL.Query().Get("limit"), 20),
		Offset:   parseIntParam(r.URL.Query().Get("offset"), 0),
	}

	products, total, err := h.catalogService.ListProducts(filters)
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

// GetProduct returns any product with its variants
func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.catalogService.GetProductWithVariants(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// CreateProduct creates a new product
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.ProductCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates an existing product
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req models.ProductUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct deletes a product
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Variant management

// CreateVariant adds a variant to a product
func (h *AdminHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req models.VariantCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	variant, err := h.catalogService.CreateVariant(productID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, variant)
}

// UpdateVariant updates a variant's name, price and stock
func (h *AdminHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	variantID, err := strconv.Atoi(chi.URLParam(r, "variantID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	var req models.VariantUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	variant, err := h.catalogService.UpdateVariant(variantID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, variant)
}

// DeleteVariant deletes a variant
func (h *AdminHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	variantID, err := strconv.Atoi(chi.URLParam(r, "variantID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid variant ID")
		return
	}

	if err := h.catalogService.DeleteVariant(variantID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Order management

// ListOrders returns orders across all users
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filters := repositories.OrderSearchFilters{
		UserID: parseIntParam(r.URL.Query().Get("user_id"), 0),
		Status: models.OrderStatus(r.URL.Query().Get("status")),
		Limit:  parseIntParam(r.URL.Query().Get("limit"), 20),
		Offset: parseIntParam(r.URL.Query().Get("offset"), 0),
	}

	orders, err := h.checkoutService.ListOrders(filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetStatistics returns order counts by status and revenue totals
func (h *AdminHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.checkoutService.GetOrderStatistics()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// User management

// ListUsers returns users matching the filters
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filters := repositories.UserSearchFilters{
		Query:  r.URL.Query().Get("q"),
		Role:   models.UserRole(r.URL.Query().Get("role")),
		Limit:  parseIntParam(r.URL.Query().Get("limit"), 20),
		Offset: parseIntParam(r.URL.Query().Get("offset"), 0),
	}

	users, err := h.userService.ListUsers(filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// SuspendUser deactivates a user account
func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.userService.SuspendUser(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ActivateUser reactivates a user account
func (h *AdminHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	if err := h.userService.ActivateUser(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
