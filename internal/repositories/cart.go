package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bakery-commerce-platform/internal/models"
)

// CartRepository handles cart line items and their stock reservations.
// Every mutation that moves stock runs inside a single transaction so the
// available-stock counter and the line item can never drift apart.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Reserve holds quantity units of a variant for a user's cart. The stock
// decrement is an atomic conditional update, so concurrent reservations on
// the same variant cannot oversell it. Reserving a variant already in the
// cart adds to the line item quantity and refreshes its expiry.
func (r *CartRepository) Reserve(userID, variantID, quantity int, ttl time.Duration) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", models.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Atomic conditional decrement; zero rows means not enough stock (or no
	// such variant) and the counter is left untouched.
	result, err := tx.Exec(`
		UPDATE product_variants
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1`, quantity, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var price int
		err = tx.QueryRow("SELECT price FROM product_variants WHERE id = $1", variantID).Scan(&price)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVariantNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check variant: %w", err)
		}
		return nil, models.ErrInsufficientStock
	}

	var price int
	err = tx.QueryRow("SELECT price FROM product_variants WHERE id = $1", variantID).Scan(&price)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant price: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	query := `
		INSERT INTO cart_items (user_id, variant_id, quantity, unit_price, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, expires_at = EXCLUDED.expires_at
		RETURNING id, user_id, variant_id, quantity, unit_price, expires_at, created_at`

	item := &models.CartItem{}
	err = tx.QueryRow(query, userID, variantID, quantity, price, expiresAt, now).Scan(
		&item.ID,
		&item.UserID,
		&item.VariantID,
		&item.Quantity,
		&item.UnitPrice,
		&item.ExpiresAt,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart item: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	return item, nil
}

// UpdateQuantity changes a line item to the given quantity, reserving or
// releasing the stock difference and refreshing the expiry
func (r *CartRepository) UpdateQuantity(itemID, quantity int, ttl time.Duration) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than 0", models.ErrInvalidInput)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var variantID, current int
	err = tx.QueryRow("SELECT variant_id, quantity FROM cart_items WHERE id = $1", itemID).Scan(&variantID, &current)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCartItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	delta := quantity - current
	if delta > 0 {
		result, err := tx.Exec(`
			UPDATE product_variants
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1`, delta, variantID)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve additional stock: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return nil, models.ErrInsufficientStock
		}
	} else if delta < 0 {
		_, err := tx.Exec("UPDATE product_variants SET stock = stock + $1 WHERE id = $2", -delta, variantID)
		if err != nil {
			return nil, fmt.Errorf("failed to release stock: %w", err)
		}
	}

	query := `
		UPDATE cart_items
		SET quantity = $1, expires_at = $2
		WHERE id = $3
		RETURNING id, user_id, variant_id, quantity, unit_price, expires_at, created_at`

	item := &models.CartItem{}
	err = tx.QueryRow(query, quantity, time.Now().Add(ttl), itemID).Scan(
		&item.ID,
		&item.UserID,
		&item.VariantID,
		&item.Quantity,
		&item.UnitPrice,
		&item.ExpiresAt,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit quantity update: %w", err)
	}

	return item, nil
}

// Release removes a line item and restores exactly its reserved quantity.
// Releasing an item that no longer exists is a no-op, which makes redundant
// release calls (user removal racing the sweeper) safe.
func (r *CartRepository) Release(itemID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var variantID, quantity int
	err = tx.QueryRow(`
		DELETE FROM cart_items
		WHERE id = $1
		RETURNING variant_id, quantity`, itemID).Scan(&variantID, &quantity)

	if errors.Is(err, sql.ErrNoRows) {
		// Already released
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	_, err = tx.Exec("UPDATE product_variants SET stock = stock + $1 WHERE id = $2", quantity, variantID)
	if err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit release: %w", err)
	}

	return nil
}

// GetItemByID retrieves a cart line item by ID
func (r *CartRepository) GetItemByID(itemID int) (*models.CartItem, error) {
	query := `
		SELECT id, user_id, variant_id, quantity, unit_price, expires_at, created_at
		FROM cart_items
		WHERE id = $1`

	item := &models.CartItem{}
	err := r.db.QueryRow(query, itemID).Scan(
		&item.ID,
		&item.UserID,
		&item.VariantID,
		&item.Quantity,
		&item.UnitPrice,
		&item.ExpiresAt,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return item, nil
}

// GetCartByUser retrieves all line items in a user's cart
func (r *CartRepository) GetCartByUser(userID int) (*models.Cart, error) {
	query := `
		SELECT id, user_id, variant_id, quantity, unit_price, expires_at, created_at
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	cart := &models.Cart{UserID: userID}
	for rows.Next() {
		item := &models.CartItem{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.VariantID,
			&item.Quantity,
			&item.UnitPrice,
			&item.ExpiresAt,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	cart.TotalAmount = cart.Total()

	return cart, nil
}

// Clear releases every line item in a user's cart
func (r *CartRepository) Clear(userID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT id, variant_id, quantity FROM cart_items WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("failed to get cart items: %w", err)
	}

	type held struct {
		id        int
		variantID int
		quantity  int
	}
	var items []held
	for rows.Next() {
		var h held
		if err := rows.Scan(&h.id, &h.variantID, &h.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating cart items: %w", err)
	}
	rows.Close()

	for _, h := range items {
		if _, err := tx.Exec("DELETE FROM cart_items WHERE id = $1", h.id); err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		if _, err := tx.Exec("UPDATE product_variants SET stock = stock + $1 WHERE id = $2", h.quantity, h.variantID); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart clear: %w", err)
	}

	return nil
}

// PurgeExpired deletes cart line items whose reservation lapsed before now
// and restores their stock. Returns the number of reservations reclaimed.
// Safe to invoke concurrently: each delete is guarded, so a reservation is
// only restored by whichever invocation actually removed the row.
func (r *CartRepository) PurgeExpired(now time.Time) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query("SELECT id, variant_id, quantity FROM cart_items WHERE expires_at < $1", now)
	if err != nil {
		return 0, fmt.Errorf("failed to get expired cart items: %w", err)
	}

	type held struct {
		id        int
		variantID int
		quantity  int
	}
	var expired []held
	for rows.Next() {
		var h held
		if err := rows.Scan(&h.id, &h.variantID, &h.quantity); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan expired cart item: %w", err)
		}
		expired = append(expired, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating expired cart items: %w", err)
	}
	rows.Close()

	reclaimed := 0
	for _, h := range expired {
		result, err := tx.Exec("DELETE FROM cart_items WHERE id = $1", h.id)
		if err != nil {
			return 0, fmt.Errorf("failed to delete expired cart item: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			// Released elsewhere in the meantime, nothing to restore
			continue
		}

		if _, err := tx.Exec("UPDATE product_variants SET stock = stock + $1 WHERE id = $2", h.quantity, h.variantID); err != nil {
			return 0, fmt.Errorf("failed to restore stock: %w", err)
		}
		reclaimed++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expired cart purge: %w", err)
	}

	return reclaimed, nil
}
