package handlers

import (
	"net/http"

	"bakery-commerce-platform/internal/models"
)

// PaymentHandler receives payment gateway callbacks
type PaymentHandler struct {
	checkoutService CheckoutService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(checkoutService CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkoutService: checkoutService}
}

// Callback processes the gateway's payment completion notification. A
// callback for an order that already expired or was cancelled is rejected
// by the guarded status transition, so late payments never resurrect a
// terminal order.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentCallbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkoutService.HandlePaymentCallback(&req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order_number": order.OrderNumber,
		"status":       order.Status,
	})
}
