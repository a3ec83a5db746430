package models

import "errors"

// Common errors used throughout the application
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("product variant not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrUnauthorized      = errors.New("unauthorized access")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrInsufficientStock = errors.New("insufficient stock available")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrStockConflict     = errors.New("reservation expired before checkout")
)
