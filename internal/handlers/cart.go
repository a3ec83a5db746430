package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bakery-commerce-platform/internal/metrics"
	"bakery-commerce-platform/internal/middleware"
	"bakery-commerce-platform/internal/models"

	"github.com/go-chi/chi/v5"
)

// CartService defines the cart operations handlers need
type CartService interface {
	AddToCart(userID int, req *models.AddToCartRequest) (*models.CartItem, error)
	GetCart(userID int) (*models.Cart, error)
	UpdateItem(userID, itemID int, req *models.UpdateCartItemRequest) (*models.CartItem, error)
	RemoveItem(userID, itemID int) error
	ClearCart(userID int) error
}

// CartHandler serves the customer's cart. Every route requires an
// authenticated user.
type CartHandler struct {
	cartService CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GetCart returns the user's cart with line items and total
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	cart, err := h.cartService.GetCart(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if cart.Items == nil {
		cart.Items = []*models.CartItem{}
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddItem reserves stock into the user's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.AddToCart(user.ID, &req)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientStock) {
			metrics.ReservationConflicts.Inc()
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem changes a line item quantity
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req models.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.cartService.UpdateItem(user.ID, itemID, &req)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientStock) {
			metrics.ReservationConflicts.Inc()
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// RemoveItem releases a line item back to stock
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	if err := h.cartService.RemoveItem(user.ID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearCart releases every reservation in the user's cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	if err := h.cartService.ClearCart(user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
