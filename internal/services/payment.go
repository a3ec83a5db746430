package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"bakery-commerce-platform/internal/models"

	"github.com/google/uuid"
)

// PaymentService defines the interface for payment providers
type PaymentService interface {
	InitiatePayment(order *models.Order) (*PaymentIntent, error)
	VerifyPayment(paymentRef string) (bool, error)
}

// PaymentIntent represents a payment initiated with the provider
type PaymentIntent struct {
	PaymentRef  string    `json:"payment_ref"`
	RedirectURL string    `json:"redirect_url"`
	Amount      int       `json:"amount"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MockPaymentService simulates a payment provider for development and
// testing. References it issues always verify.
type MockPaymentService struct {
	callbackURL string
}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService(callbackURL string) *MockPaymentService {
	log.Println("Payment service: using mock provider (no gateway credentials provided)")
	return &MockPaymentService{callbackURL: callbackURL}
}

// InitiatePayment creates a mock payment intent for an order
func (s *MockPaymentService) InitiatePayment(order *models.Order) (*PaymentIntent, error) {
	if order == nil {
		return nil, fmt.Errorf("%w: order is required", models.ErrInvalidInput)
	}
	if !order.IsPendingPayment() {
		return nil, fmt.Errorf("%w: order %s is not awaiting payment", models.ErrInvalidInput, order.OrderNumber)
	}

	ref := "mockpay_" + uuid.New().String()
	return &PaymentIntent{
		PaymentRef:  ref,
		RedirectURL: fmt.Sprintf("%s?order_number=%s&payment_ref=%s&status=success", s.callbackURL, order.OrderNumber, ref),
		Amount:      order.TotalAmount,
		ExpiresAt:   order.PaymentDeadline,
	}, nil
}

// VerifyPayment verifies a payment reference with the mock provider
func (s *MockPaymentService) VerifyPayment(paymentRef string) (bool, error) {
	if paymentRef == "" {
		return false, fmt.Errorf("%w: payment reference is required", models.ErrInvalidInput)
	}
	return strings.HasPrefix(paymentRef, "mockpay_"), nil
}
