package services

import (
	"fmt"

	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
)

// CatalogService handles product catalog business logic
type CatalogService struct {
	productRepo ProductRepository
}

// ProductRepository interface for product data operations
type ProductRepository interface {
	Create(req *models.ProductCreateRequest) (*models.Product, error)
	GetByID(id int) (*models.Product, error)
	Update(id int, req *models.ProductUpdateRequest) (*models.Product, error)
	Delete(id int) error
	Search(filters repositories.ProductSearchFilters) ([]*models.Product, int, error)
	GetWithVariants(id int) (*repositories.ProductWithVariants, error)
	CreateVariant(productID int, req *models.VariantCreateRequest) (*models.ProductVariant, error)
	GetVariantByID(id int) (*models.ProductVariant, error)
	GetVariantsByProduct(productID int) ([]*models.ProductVariant, error)
	UpdateVariant(id int, req *models.VariantUpdateRequest) (*models.ProductVariant, error)
	DeleteVariant(id int) error

	// Admin-specific methods
	GetProductCount() (int, error)
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// BrowseProducts returns active products for the storefront
func (s *CatalogService) BrowseProducts(filters repositories.ProductSearchFilters) ([]*models.Product, int, error) {
	filters.ActiveOnly = true
	return s.productRepo.Search(filters)
}

// GetProduct returns a product with its variants for the storefront.
// Inactive products are hidden from customers.
func (s *CatalogService) GetProduct(id int) (*repositories.ProductWithVariants, error) {
	product, err := s.productRepo.GetWithVariants(id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

// GetVariant returns a single variant
func (s *CatalogService) GetVariant(id int) (*models.ProductVariant, error) {
	return s.productRepo.GetVariantByID(id)
}

// Admin operations

// CreateProduct creates a new product
func (s *CatalogService) CreateProduct(req *models.ProductCreateRequest) (*models.Product, error) {
	return s.productRepo.Create(req)
}

// UpdateProduct updates an existing product
func (s *CatalogService) UpdateProduct(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	return s.productRepo.Update(id, req)
}

// DeleteProduct deletes a product
func (s *CatalogService) DeleteProduct(id int) error {
	return s.productRepo.Delete(id)
}

// ListProducts returns products for the admin view, including inactive ones
func (s *CatalogService) ListProducts(filters repositories.ProductSearchFilters) ([]*models.Product, int, error) {
	return s.productRepo.Search(filters)
}

// GetProductWithVariants returns any product with its variants, active or not
func (s *CatalogService) GetProductWithVariants(id int) (*repositories.ProductWithVariants, error) {
	return s.productRepo.GetWithVariants(id)
}

// CreateVariant adds a variant to a product
func (s *CatalogService) CreateVariant(productID int, req *models.VariantCreateRequest) (*models.ProductVariant, error) {
	return s.productRepo.CreateVariant(productID, req)
}

// UpdateVariant updates a variant
func (s *CatalogService) UpdateVariant(id int, req *models.VariantUpdateRequest) (*models.ProductVariant, error) {
	return s.productRepo.UpdateVariant(id, req)
}

// DeleteVariant deletes a variant
func (s *CatalogService) DeleteVariant(id int) error {
	return s.productRepo.DeleteVariant(id)
}

// GetProductCount returns the total number of products
func (s *CatalogService) GetProductCount() (int, error) {
	count, err := s.productRepo.GetProductCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get product count: %w", err)
	}
	return count, nil
}
