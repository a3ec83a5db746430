package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderPaid           OrderStatus = "paid"
	OrderExpired        OrderStatus = "expired"
	OrderCancelled      OrderStatus = "cancelled"
)

// Order represents an order created from a cart snapshot at checkout time
type Order struct {
	ID              int         `json:"id" db:"id"`
	UserID          int         `json:"user_id" db:"user_id"`
	OrderNumber     string      `json:"order_number" db:"order_number"`
	TotalAmount     int         `json:"total_amount" db:"total_amount"` // Amount in cents
	Status          OrderStatus `json:"status" db:"status"`
	PaymentRef      string      `json:"payment_ref" db:"payment_ref"`
	BillingEmail    string      `json:"billing_email" db:"billing_email"`
	BillingName     string      `json:"billing_name" db:"billing_name"`
	PaymentDeadline time.Time   `json:"payment_deadline" db:"payment_deadline"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderItem represents an immutable snapshot of a cart line item at checkout
type OrderItem struct {
	ID        int `json:"id" db:"id"`
	OrderID   int `json:"order_id" db:"order_id"`
	VariantID int `json:"variant_id" db:"variant_id"`
	Quantity  int `json:"quantity" db:"quantity"`
	UnitPrice int `json:"unit_price" db:"unit_price"` // Price in cents at checkout time
}

// OrderCreateRequest represents the data needed to create a new order
type OrderCreateRequest struct {
	UserID          int         `json:"user_id"`
	TotalAmount     int         `json:"total_amount"`
	BillingEmail    string      `json:"billing_email"`
	BillingName     string      `json:"billing_name"`
	Status          OrderStatus `json:"status"`
	PaymentDeadline time.Time   `json:"payment_deadline"`
}

var (
	// Order number format: ORD-YYYYMMDD-XXXXXX (e.g., ORD-20240101-123456)
	orderNumberRegex = regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)
	// Email validation regex for orders
	orderEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Validate validates the order data
func (o *Order) Validate() error {
	if err := o.validateOrderNumber(); err != nil {
		return err
	}

	if err := validateOrderTotalAmount(o.TotalAmount); err != nil {
		return err
	}

	if err := validateOrderStatus(o.Status); err != nil {
		return err
	}

	return validateOrderBillingInfo(o.BillingEmail, o.BillingName)
}

// Validate validates order creation data
func (req *OrderCreateRequest) Validate() error {
	if err := validateOrderTotalAmount(req.TotalAmount); err != nil {
		return err
	}

	if err := validateOrderStatus(req.Status); err != nil {
		return err
	}

	if req.PaymentDeadline.IsZero() {
		return errors.New("payment deadline is required")
	}

	return validateOrderBillingInfo(req.BillingEmail, req.BillingName)
}

// validateOrderNumber validates the order number
func (o *Order) validateOrderNumber() error {
	if o.OrderNumber == "" {
		return errors.New("order number is required")
	}

	if !orderNumberRegex.MatchString(o.OrderNumber) {
		return errors.New("order number format is invalid")
	}

	return nil
}

// validateOrderTotalAmount validates an order total amount
func validateOrderTotalAmount(totalAmount int) error {
	if totalAmount <= 0 {
		return errors.New("total amount must be greater than 0")
	}

	// Maximum order amount of $100,000 (10,000,000 cents)
	if totalAmount > 10000000 {
		return errors.New("total amount cannot exceed $100,000")
	}

	return nil
}

// validateOrderStatus validates an order status
func validateOrderStatus(status OrderStatus) error {
	switch status {
	case OrderPendingPayment, OrderPaid, OrderExpired, OrderCancelled:
		return nil
	default:
		return errors.New("invalid order status")
	}
}

// validateOrderBillingInfo validates order billing information
func validateOrderBillingInfo(billingEmail, billingName string) error {
	if billingEmail == "" {
		return errors.New("billing email is required")
	}

	if billingName == "" {
		return errors.New("billing name is required")
	}

	if len(billingEmail) > 255 {
		return errors.New("billing email must be less than 255 characters")
	}

	if len(billingName) > 255 {
		return errors.New("billing name must be less than 255 characters")
	}

	if !orderEmailRegex.MatchString(billingEmail) {
		return errors.New("billing email format is invalid")
	}

	if strings.TrimSpace(billingName) == "" {
		return errors.New("billing name cannot be only whitespace")
	}

	return nil
}

// GenerateOrderNumber generates a unique order number
func GenerateOrderNumber() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	// Generate a 6-digit random number using crypto/rand for better uniqueness
	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		timestamp := now.UnixNano()
		randomPart := timestamp % 1000000
		return fmt.Sprintf("ORD-%s-%06d", dateStr, randomPart)
	}

	return fmt.Sprintf("ORD-%s-%06d", dateStr, randomNum.Int64())
}

// IsPendingPayment returns true if the order is awaiting payment
func (o *Order) IsPendingPayment() bool {
	return o.Status == OrderPendingPayment
}

// IsPaid returns true if the order has been paid
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// IsTerminal returns true if the order is in a terminal state
func (o *Order) IsTerminal() bool {
	switch o.Status {
	case OrderPaid, OrderExpired, OrderCancelled:
		return true
	default:
		return false
	}
}

// CanBeCancelled returns true if the order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPendingPayment
}

// CanBePaid returns true if the order can transition to paid
func (o *Order) CanBePaid() bool {
	return o.Status == OrderPendingPayment
}

// IsOverdue returns true if the payment deadline has passed at the given instant
func (o *Order) IsOverdue(now time.Time) bool {
	return o.Status == OrderPendingPayment && now.After(o.PaymentDeadline)
}

// CanTransitionTo reports whether the order may move to the given status.
// pending_payment -> {paid, expired, cancelled}; all three are terminal.
func (o *Order) CanTransitionTo(status OrderStatus) bool {
	if o.Status != OrderPendingPayment {
		return false
	}

	switch status {
	case OrderPaid, OrderExpired, OrderCancelled:
		return true
	default:
		return false
	}
}

// TotalAmountInCurrency returns the total amount in the main currency as a float
func (o *Order) TotalAmountInCurrency() float64 {
	return float64(o.TotalAmount) / 100.0
}

// GetStatusDisplayName returns a human-readable status name
func (o *Order) GetStatusDisplayName() string {
	switch o.Status {
	case OrderPendingPayment:
		return "Pending Payment"
	case OrderPaid:
		return "Paid"
	case OrderExpired:
		return "Expired"
	case OrderCancelled:
		return "Cancelled"
	default:
		return string(o.Status)
	}
}
