package models

import (
	"errors"
	"time"
)

// CartItem represents a cart line item holding a timed stock reservation
// against a product variant. The reserved quantity has already been taken
// out of the variant's available stock and is restored when the item is
// removed, expires, or its order is cancelled or expired.
type CartItem struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	VariantID int       `json:"variant_id" db:"variant_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UnitPrice int       `json:"unit_price" db:"unit_price"` // Price in cents at reservation time
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Cart represents a customer's current cart contents
type Cart struct {
	UserID      int         `json:"user_id"`
	Items       []*CartItem `json:"items"`
	TotalAmount int         `json:"total_amount"` // in cents
}

// Validate validates the cart item data
func (ci *CartItem) Validate() error {
	if err := validateCartQuantity(ci.Quantity); err != nil {
		return err
	}

	if ci.VariantID <= 0 {
		return errors.New("variant id is required")
	}

	return nil
}

// validateCartQuantity validates a cart line item quantity
func validateCartQuantity(quantity int) error {
	if quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}

	// Maximum of 50 units per line item (business rule)
	if quantity > 50 {
		return errors.New("quantity cannot exceed 50 per item")
	}

	return nil
}

// IsExpired returns true if the reservation has lapsed at the given instant
func (ci *CartItem) IsExpired(now time.Time) bool {
	return now.After(ci.ExpiresAt)
}

// Subtotal returns the line item subtotal in cents
func (ci *CartItem) Subtotal() int {
	return ci.UnitPrice * ci.Quantity
}

// IsEmpty returns true if the cart has no line items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total recalculates the cart total from its line items
func (c *Cart) Total() int {
	total := 0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
