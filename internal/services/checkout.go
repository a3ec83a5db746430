package services

import (
	"fmt"
	"log"
	"time"

	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
)

// CheckoutService converts carts into orders and tracks them through the
// payment lifecycle
type CheckoutService struct {
	orderRepo       OrderRepository
	cartRepo        CartRepository
	paymentService  PaymentService
	emailService    EmailService
	paymentDeadline time.Duration
}

// OrderRepository interface for order data operations
type OrderRepository interface {
	Create(req *models.OrderCreateRequest, cartItems []*models.CartItem) (*models.Order, error)
	GetByID(id int) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetOrderItems(orderID int) ([]*models.OrderItem, error)
	Search(filters repositories.OrderSearchFilters) ([]*models.Order, error)
	MarkPaid(orderID int, paymentRef string) error
	Cancel(orderID int) error
	ExpireOverdue(now time.Time) (int, error)

	// Admin-specific methods
	GetOrderCount() (int, error)
	GetTotalRevenue() (int, error)
	GetOrderStatistics() (map[string]int, error)
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo OrderRepository,
	cartRepo CartRepository,
	paymentService PaymentService,
	emailService EmailService,
	paymentDeadline time.Duration,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:       orderRepo,
		cartRepo:        cartRepo,
		paymentService:  paymentService,
		emailService:    emailService,
		paymentDeadline: paymentDeadline,
	}
}

// CheckoutResult carries the created order and the payment redirect
type CheckoutResult struct {
	Order      *models.Order  `json:"order"`
	Payment    *PaymentIntent `json:"payment"`
	TotalItems int            `json:"total_items"`
}

// Checkout converts the user's cart into a pending order. The cart must be
// non-empty and every reservation still live; an expired reservation fails
// the whole checkout so the customer never pays for stock that was already
// released.
func (s *CheckoutService) Checkout(userID int, req *models.CheckoutRequest) (*CheckoutResult, error) {
	if req.BillingEmail == "" || req.BillingName == "" {
		return nil, fmt.Errorf("%w: billing email and name are required", models.ErrInvalidInput)
	}

	cart, err := s.cartRepo.GetCartByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	now := time.Now()
	for _, item := range cart.Items {
		if item.IsExpired(now) {
			return nil, models.ErrStockConflict
		}
	}

	orderReq := &models.OrderCreateRequest{
		UserID:          userID,
		TotalAmount:     cart.Total(),
		BillingEmail:    req.BillingEmail,
		BillingName:     req.BillingName,
		Status:          models.OrderPendingPayment,
		PaymentDeadline: now.Add(s.paymentDeadline),
	}

	order, err := s.orderRepo.Create(orderReq, cart.Items)
	if err != nil {
		return nil, err
	}

	intent, err := s.paymentService.InitiatePayment(order)
	if err != nil {
		// The order stays pending; the sweeper reclaims it if the customer
		// never retries payment before the deadline.
		log.Printf("Failed to initiate payment for order %s: %v", order.OrderNumber, err)
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	return &CheckoutResult{
		Order:      order,
		Payment:    intent,
		TotalItems: len(cart.Items),
	}, nil
}

// HandlePaymentCallback processes the payment gateway's completion callback
func (s *CheckoutService) HandlePaymentCallback(req *models.PaymentCallbackRequest) (*models.Order, error) {
	if req.OrderNumber == "" || req.PaymentRef == "" {
		return nil, fmt.Errorf("%w: order number and payment reference are required", models.ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByOrderNumber(req.OrderNumber)
	if err != nil {
		return nil, err
	}

	if req.Status != "success" {
		log.Printf("Payment for order %s reported status %q, leaving order %s", order.OrderNumber, req.Status, order.Status)
		return order, nil
	}

	verified, err := s.paymentService.VerifyPayment(req.PaymentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	if !verified {
		return nil, fmt.Errorf("%w: payment reference could not be verified", models.ErrInvalidInput)
	}

	if err := s.orderRepo.MarkPaid(order.ID, req.PaymentRef); err != nil {
		return nil, err
	}

	paid, err := s.orderRepo.GetByID(order.ID)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendOrderConfirmation(paid); err != nil {
			// Email failure must not fail the payment
			log.Printf("Failed to send confirmation for order %s: %v", paid.OrderNumber, err)
		}
	}

	return paid, nil
}

// GetOrder returns an order if it belongs to the user
func (s *CheckoutService) GetOrder(userID, orderID int) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrUnauthorized
	}
	return order, nil
}

// GetOrderItems returns the line items of a user's order
func (s *CheckoutService) GetOrderItems(userID, orderID int) ([]*models.OrderItem, error) {
	if _, err := s.GetOrder(userID, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetOrderItems(orderID)
}

// GetUserOrders returns the user's order history
func (s *CheckoutService) GetUserOrders(userID, limit, offset int) ([]*models.Order, error) {
	return s.orderRepo.Search(repositories.OrderSearchFilters{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
}

// CancelOrder cancels a pending order on the customer's behalf
func (s *CheckoutService) CancelOrder(userID, orderID int) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return models.ErrUnauthorized
	}
	if !order.CanBeCancelled() {
		return fmt.Errorf("%w: order %s is %s and cannot be cancelled", models.ErrInvalidInput, order.OrderNumber, order.Status)
	}
	return s.orderRepo.Cancel(orderID)
}

// Admin operations

// ListOrders returns orders matching the filters for the admin view
func (s *CheckoutService) ListOrders(filters repositories.OrderSearchFilters) ([]*models.Order, error) {
	return s.orderRepo.Search(filters)
}

// GetOrderStatistics returns order counts by status and total revenue
func (s *CheckoutService) GetOrderStatistics() (map[string]interface{}, error) {
	byStatus, err := s.orderRepo.GetOrderStatistics()
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderRepo.GetTotalRevenue()
	if err != nil {
		return nil, err
	}

	count, err := s.orderRepo.GetOrderCount()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"total_orders":    count,
		"total_revenue":   revenue,
		"revenue_dollars": float64(revenue) / 100,
	}
	for status, n := range byStatus {
		stats[status+"_orders"] = n
	}

	return stats, nil
}
