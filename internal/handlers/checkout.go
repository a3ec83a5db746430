package handlers

import (
	"net/http"
	"strconv"

	"bakery-commerce-platform/internal/middleware"
	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
	"bakery-commerce-platform/internal/services"

	"github.com/go-chi/chi/v5"
)

// CheckoutService defines the checkout operations handlers need
type CheckoutService interface {
	Checkout(userID int, req *models.CheckoutRequest) (*services.CheckoutResult, error)
	HandlePaymentCallback(req *models.PaymentCallbackRequest) (*models.Order, error)
	GetOrder(userID, orderID int) (*models.Order, error)
	GetOrderItems(userID, orderID int) ([]*models.OrderItem, error)
	GetUserOrders(userID, limit, offset int) ([]*models.Order, error)
	CancelOrder(userID, orderID int) error
	ListOrders(filters repositories.OrderSearchFilters) ([]*models.Order, error)
	GetOrderStatistics() (map[string]interface{}, error)
}

// CheckoutHandler serves checkout and order history routes
type CheckoutHandler struct {
	checkoutService CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout converts the user's cart into a pending order
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.checkoutService.Checkout(user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ListOrders returns the user's order history
func (h *CheckoutHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	limit := parseIntParam(r.URL.Query().Get("limit"), 20)
	offset := parseIntParam(r.URL.Query().Get("offset"), 0)

	orders, err := h.checkoutService.GetUserOrders(user.ID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if orders == nil {
		orders = []*models.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// GetOrder returns one of the user's orders with its line items
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.checkoutService.GetOrder(user.ID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items, err := h.checkoutService.GetOrderItems(user.ID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*models.OrderItem{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

// CancelOrder cancels one of the user's pending orders
func (h *CheckoutHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	if err := h.checkoutService.CancelOrder(user.ID, orderID); err != nil {
		writeServiceError(w, err)
		return
	}

	order, err := h.checkoutService.GetOrder(user.ID, orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
