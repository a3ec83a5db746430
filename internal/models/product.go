package models

import (
	"errors"
	"strings"
	"time"
)

// Product represents a product in the bakery catalog
type Product struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductVariant represents a purchasable configuration of a product
// (size, flavor, etc.) carrying its own price and stock count
type ProductVariant struct {
	ID        int       `json:"id" db:"id"`
	ProductID int       `json:"product_id" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	Price     int       `json:"price" db:"price"` // Price in cents
	Stock     int       `json:"stock" db:"stock"` // Currently available (unreserved) stock
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Validate validates the product data
func (p *Product) Validate() error {
	if err := validateProductName(p.Name); err != nil {
		return err
	}

	if err := validateProductDescription(p.Description); err != nil {
		return err
	}

	return nil
}

// Validate validates the product variant data
func (v *ProductVariant) Validate() error {
	if err := validateVariantName(v.Name); err != nil {
		return err
	}

	if err := validateVariantPrice(v.Price); err != nil {
		return err
	}

	if err := validateVariantStock(v.Stock); err != nil {
		return err
	}

	return nil
}

// ValidateCreate validates product creation data
func (req *ProductCreateRequest) Validate() error {
	if err := validateProductName(req.Name); err != nil {
		return err
	}

	return validateProductDescription(req.Description)
}

// ValidateUpdate validates product update data
func (req *ProductUpdateRequest) Validate() error {
	if err := validateProductName(req.Name); err != nil {
		return err
	}

	return validateProductDescription(req.Description)
}

// Validate validates variant creation data
func (req *VariantCreateRequest) Validate() error {
	if err := validateVariantName(req.Name); err != nil {
		return err
	}

	if err := validateVariantPrice(req.Price); err != nil {
		return err
	}

	return validateVariantStock(req.Stock)
}

// Validate validates variant update data
func (req *VariantUpdateRequest) Validate() error {
	if err := validateVariantName(req.Name); err != nil {
		return err
	}

	if err := validateVariantPrice(req.Price); err != nil {
		return err
	}

	return validateVariantStock(req.Stock)
}

// validateProductName validates a product name
func validateProductName(name string) error {
	if name == "" {
		return errors.New("product name is required")
	}

	if len(name) > 100 {
		return errors.New("product name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("product name cannot be only whitespace")
	}

	return nil
}

// validateProductDescription validates a product description
func validateProductDescription(description string) error {
	// Description is optional, but if provided, it should not be too long
	if len(description) > 1000 {
		return errors.New("product description must be less than 1000 characters")
	}

	return nil
}

// validateVariantName validates a variant name
func validateVariantName(name string) error {
	if name == "" {
		return errors.New("variant name is required")
	}

	if len(name) > 100 {
		return errors.New("variant name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("variant name cannot be only whitespace")
	}

	return nil
}

// validateVariantPrice validates a variant price
func validateVariantPrice(price int) error {
	if price < 0 {
		return errors.New("variant price cannot be negative")
	}

	// Maximum price of $10,000 (1,000,000 cents)
	if price > 1000000 {
		return errors.New("variant price cannot exceed $10,000")
	}

	return nil
}

// validateVariantStock validates a variant stock count
func validateVariantStock(stock int) error {
	if stock < 0 {
		return errors.New("variant stock cannot be negative")
	}

	// Maximum stock of 100,000 units per variant
	if stock > 100000 {
		return errors.New("variant stock cannot exceed 100,000")
	}

	return nil
}

// IsAvailable returns true if the variant has stock available for reservation
func (v *ProductVariant) IsAvailable() bool {
	return v.Stock > 0
}

// IsSoldOut returns true if no stock remains
func (v *ProductVariant) IsSoldOut() bool {
	return v.Stock <= 0
}

// CanReserve returns true if the requested quantity can be reserved
func (v *ProductVariant) CanReserve(quantity int) bool {
	return quantity > 0 && quantity <= v.Stock
}

// PriceInCurrency returns the price in the main currency as a float
func (v *ProductVariant) PriceInCurrency() float64 {
	return float64(v.Price) / 100.0
}
