package services

import (
	"fmt"
	"time"

	"bakery-commerce-platform/internal/models"
)

// CartService handles cart business logic. Adding to the cart reserves
// stock immediately; the reservation lapses unless checkout happens within
// the configured TTL.
type CartService struct {
	cartRepo       CartRepository
	productRepo    ProductRepository
	reservationTTL time.Duration
}

// CartRepository interface for cart data operations
type CartRepository interface {
	Reserve(userID, variantID, quantity int, ttl time.Duration) (*models.CartItem, error)
	UpdateQuantity(itemID, quantity int, ttl time.Duration) (*models.CartItem, error)
	Release(itemID int) error
	GetItemByID(itemID int) (*models.CartItem, error)
	GetCartByUser(userID int) (*models.Cart, error)
	Clear(userID int) error
	PurgeExpired(now time.Time) (int, error)
}

// NewCartService creates a new cart service
func NewCartService(cartRepo CartRepository, productRepo ProductRepository, reservationTTL time.Duration) *CartService {
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		reservationTTL: reservationTTL,
	}
}

// AddToCart reserves stock for the user's cart
func (s *CartService) AddToCart(userID int, req *models.AddToCartRequest) (*models.CartItem, error) {
	if req.VariantID <= 0 {
		return nil, fmt.Errorf("%w: variant ID is required", models.ErrInvalidInput)
	}
	if req.Quantity <= 0 || req.Quantity > 50 {
		return nil, fmt.Errorf("%w: quantity must be between 1 and 50", models.ErrInvalidInput)
	}

	variant, err := s.productRepo.GetVariantByID(req.VariantID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(variant.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, models.ErrProductNotFound
	}

	return s.cartRepo.Reserve(userID, req.VariantID, req.Quantity, s.reservationTTL)
}

// GetCart returns the user's cart
func (s *CartService) GetCart(userID int) (*models.Cart, error) {
	return s.cartRepo.GetCartByUser(userID)
}

// UpdateItem changes a line item quantity, adjusting the reservation
func (s *CartService) UpdateItem(userID, itemID int, req *models.UpdateCartItemRequest) (*models.CartItem, error) {
	if req.Quantity <= 0 || req.Quantity > 50 {
		return nil, fmt.Errorf("%w: quantity must be between 1 and 50", models.ErrInvalidInput)
	}

	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, models.ErrUnauthorized
	}

	return s.cartRepo.UpdateQuantity(itemID, req.Quantity, s.reservationTTL)
}

// RemoveItem releases a line item back to stock
func (s *CartService) RemoveItem(userID, itemID int) error {
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return models.ErrUnauthorized
	}

	return s.cartRepo.Release(itemID)
}

// ClearCart releases every reservation in the user's cart
func (s *CartService) ClearCart(userID int) error {
	return s.cartRepo.Clear(userID)
}
