package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"bakery-commerce-platform/internal/models"
)

// ProductRepository handles product and variant data operations
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductSearchFilters represents filters for product search
type ProductSearchFilters struct {
	Category   string // Filter by category
	ActiveOnly bool   // Only return active products
	Query      string // Name substring match
	Limit      int    // Number of results to return
	Offset     int    // Number of results to skip
}

// ProductWithVariants represents a product with its purchasable variants
type ProductWithVariants struct {
	*models.Product
	Variants []*models.ProductVariant `json:"variants"`
}

// Create creates a new product
func (r *ProductRepository) Create(req *models.ProductCreateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO products (name, description, category, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, category, image_url, is_active, created_at, updated_at`

	now := time.Now()
	product := &models.Product{}

	err := r.db.QueryRow(
		query,
		req.Name,
		req.Description,
		req.Category,
		req.ImageURL,
		true,
		now,
		now,
	).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.ImageURL,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := `
		SELECT id, name, description, category, image_url, is_active, created_at, updated_at
		FROM products
		WHERE id = $1`

	product := &models.Product{}
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.ImageURL,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

// Update updates a product
func (r *ProductRepository) Update(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	isActive := existing.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	query := `
		UPDATE products
		SET name = $1, description = $2, category = $3, image_url = $4, is_active = $5, updated_at = $6
		WHERE id = $7
		RETURNING id, name, description, category, image_url, is_active, created_at, updated_at`

	product := &models.Product{}
	err = r.db.QueryRow(
		query,
		req.Name,
		req.Description,
		req.Category,
		req.ImageURL,
		isActive,
		time.Now(),
		id,
	).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Category,
		&product.ImageURL,
		&product.IsActive,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// Delete deletes a product and its variants (only if no variant has pending holds)
func (r *ProductRepository) Delete(id int) error {
	// Refuse to delete products referenced by live cart reservations
	var held int
	err := r.db.QueryRow(`
		SELECT COUNT(*)
		FROM cart_items ci
		JOIN product_variants v ON ci.variant_id = v.id
		WHERE v.product_id = $1`, id).Scan(&held)

	if err != nil {
		return fmt.Errorf("failed to check product reservations: %w", err)
	}

	if held > 0 {
		return fmt.Errorf("cannot delete product with active cart reservations")
	}

	result, err := r.db.Exec("DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrProductNotFound
	}

	return nil
}

// Search searches for products with filters and pagination
func (r *ProductRepository) Search(filters ProductSearchFilters) ([]*models.Product, int, error) {
	var conditions []string
	var args []interface{}
	argIndex := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, filters.Category)
		argIndex++
	}

	if filters.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}

	if filters.Query != "" {
		conditions = append(conditions, fmt.Sprintf("name LIKE $%d", argIndex))
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Set default pagination
	if filters.Limit <= 0 {
		filters.Limit = 20
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	err := r.db.QueryRow(countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get product count: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, category, image_url, is_active, created_at, updated_at
		FROM products
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, argIndex, argIndex+1)

	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Category,
			&product.ImageURL,
			&product.IsActive,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// GetWithVariants retrieves a product together with its variants
func (r *ProductRepository) GetWithVariants(id int) (*ProductWithVariants, error) {
	product, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	variants, err := r.GetVariantsByProduct(id)
	if err != nil {
		return nil, err
	}

	return &ProductWithVariants{Product: product, Variants: variants}, nil
}

// Variant operations

// CreateVariant creates a new variant for a product
func (r *ProductRepository) CreateVariant(productID int, req *models.VariantCreateRequest) (*models.ProductVariant, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Ensure the parent product exists
	if _, err := r.GetByID(productID); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO product_variants (product_id, name, price, stock, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, name, price, stock, created_at`

	variant := &models.ProductVariant{}
	err := r.db.QueryRow(
		query,
		productID,
		req.Name,
		req.Price,
		req.Stock,
		time.Now(),
	).Scan(
		&variant.ID,
		&variant.ProductID,
		&variant.Name,
		&variant.Price,
		&variant.Stock,
		&variant.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create variant: %w", err)
	}

	return variant, nil
}

// GetVariantByID retrieves a variant by ID
func (r *ProductRepository) GetVariantByID(id int) (*models.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, price, stock, created_at
		FROM product_variants
		WHERE id = $1`

	variant := &models.ProductVariant{}
	err := r.db.QueryRow(query, id).Scan(
		&variant.ID,
		&variant.ProductID,
		&variant.Name,
		&variant.Price,
		&variant.Stock,
		&variant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}

	return variant, nil
}

// GetVariantsByProduct retrieves all variants for a product
func (r *ProductRepository) GetVariantsByProduct(productID int) ([]*models.ProductVariant, error) {
	query := `
		SELECT id, product_id, name, price, stock, created_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY price ASC, created_at ASC`

	rows, err := r.db.Query(query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to get variants by product: %w", err)
	}
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		variant := &models.ProductVariant{}
		err := rows.Scan(
			&variant.ID,
			&variant.ProductID,
			&variant.Name,
			&variant.Price,
			&variant.Stock,
			&variant.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, variant)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variants: %w", err)
	}

	return variants, nil
}

// UpdateVariant updates a variant's name, price and stock
func (r *ProductRepository) UpdateVariant(id int, req *models.VariantUpdateRequest) (*models.ProductVariant, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE product_variants
		SET name = $1, price = $2, stock = $3
		WHERE id = $4
		RETURNING id, product_id, name, price, stock, created_at`

	variant := &models.ProductVariant{}
	err := r.db.QueryRow(
		query,
		req.Name,
		req.Price,
		req.Stock,
		id,
	).Scan(
		&variant.ID,
		&variant.ProductID,
		&variant.Name,
		&variant.Price,
		&variant.Stock,
		&variant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to update variant: %w", err)
	}

	return variant, nil
}

// DeleteVariant deletes a variant (only if it has no cart reservations)
func (r *ProductRepository) DeleteVariant(id int) error {
	var held int
	err := r.db.QueryRow("SELECT COUNT(*) FROM cart_items WHERE variant_id = $1", id).Scan(&held)
	if err != nil {
		return fmt.Errorf("failed to check variant reservations: %w", err)
	}

	if held > 0 {
		return fmt.Errorf("cannot delete variant with active cart reservations")
	}

	result, err := r.db.Exec("DELETE FROM product_variants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete variant: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrVariantNotFound
	}

	return nil
}

// GetProductCount returns the total number of products
func (r *ProductRepository) GetProductCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get product count: %w", err)
	}
	return count, nil
}
