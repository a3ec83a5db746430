package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bakery-commerce-platform/internal/models"
)

// OrderRepository handles database operations for orders
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderSearchFilters represents filters for order search
type OrderSearchFilters struct {
	UserID int
	Status models.OrderStatus
	Limit  int
	Offset int
}

// Create converts a set of cart line items into an order in one transaction.
// The stock already held by the cart items transfers to the order, so no
// counters move here. If any cart item vanished before the delete (the
// sweeper reclaimed it), the whole transaction rolls back with
// ErrStockConflict and nothing is charged.
func (r *OrderRepository) Create(req *models.OrderCreateRequest, cartItems []*models.CartItem) (*models.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, models.ErrEmptyCart
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderNumber := models.GenerateOrderNumber()
	now := time.Now()
	query := `
		INSERT INTO orders (user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '', $5, $6, $7, $8, $8)
		RETURNING id, user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at`

	order := &models.Order{}
	err = tx.QueryRow(query,
		req.UserID,
		orderNumber,
		req.TotalAmount,
		models.OrderPendingPayment,
		req.BillingEmail,
		req.BillingName,
		req.PaymentDeadline,
		now,
	).Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentRef,
		&order.BillingEmail,
		&order.BillingName,
		&order.PaymentDeadline,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range cartItems {
		// Guarded delete: zero rows means the reservation expired under us
		result, err := tx.Exec("DELETE FROM cart_items WHERE id = $1", item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to consume cart item: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return nil, models.ErrStockConflict
		}

		_, err = tx.Exec(`
			INSERT INTO order_items (order_id, variant_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			order.ID, item.VariantID, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(id int) (*models.Order, error) {
	query := `
		SELECT id, user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at
		FROM orders
		WHERE id = $1`

	return r.scanOrder(r.db.QueryRow(query, id))
}

// GetByOrderNumber retrieves an order by its order number
func (r *OrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	query := `
		SELECT id, user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at
		FROM orders
		WHERE order_number = $1`

	return r.scanOrder(r.db.QueryRow(query, orderNumber))
}

func (r *OrderRepository) scanOrder(row *sql.Row) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.OrderNumber,
		&order.TotalAmount,
		&order.Status,
		&order.PaymentRef,
		&order.BillingEmail,
		&order.BillingName,
		&order.PaymentDeadline,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetOrderItems retrieves the line items of an order
func (r *OrderRepository) GetOrderItems(orderID int) ([]*models.OrderItem, error) {
	query := `
		SELECT id, order_id, variant_id, quantity, unit_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.VariantID,
			&item.Quantity,
			&item.UnitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// Search retrieves orders matching the given filters
func (r *OrderRepository) Search(filters OrderSearchFilters) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at
		FROM orders
		WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if filters.UserID > 0 {
		query += " AND user_id = $" + strconv.Itoa(argIndex)
		args = append(args, filters.UserID)
		argIndex++
	}

	if filters.Status != "" {
		query += " AND status = $" + strconv.Itoa(argIndex)
		args = append(args, filters.Status)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filters.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}

	if filters.Offset > 0 {
		query += " OFFSET $" + strconv.Itoa(argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.OrderNumber,
			&order.TotalAmount,
			&order.Status,
			&order.PaymentRef,
			&order.BillingEmail,
			&order.BillingName,
			&order.PaymentDeadline,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// MarkPaid transitions a pending order to paid and records the payment
// reference. The update is guarded on the current status, so a payment
// arriving after the order expired (or was cancelled) changes nothing.
func (r *OrderRepository) MarkPaid(orderID int, paymentRef string) error {
	result, err := r.db.Exec(`
		UPDATE orders
		SET status = $1, payment_ref = $2, updated_at = $3
		WHERE id = $4 AND status = $5`,
		models.OrderPaid, paymentRef, time.Now(), orderID, models.OrderPendingPayment)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		order, err := r.GetByID(orderID)
		if err != nil {
			return err
		}
		return fmt.Errorf("%w: order %s is %s and cannot be paid", models.ErrInvalidInput, order.OrderNumber, order.Status)
	}

	return nil
}

// Cancel transitions a pending order to cancelled and restores the stock
// held by its line items, all in one transaction
func (r *OrderRepository) Cancel(orderID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`,
		models.OrderCancelled, time.Now(), orderID, models.OrderPendingPayment)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Read the current status on this transaction's connection; a
		// pool query here would block while the tx holds the connection.
		var orderNumber string
		var status models.OrderStatus
		err := tx.QueryRow(`
			SELECT order_number, status FROM orders WHERE id = $1`,
			orderID).Scan(&orderNumber, &status)
		if err == sql.ErrNoRows {
			return models.ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get order: %w", err)
		}
		return fmt.Errorf("%w: order %s is %s and cannot be cancelled", models.ErrInvalidInput, orderNumber, status)
	}

	if err := r.restoreOrderStock(tx, orderID); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cancellation: %w", err)
	}

	return nil
}

// ExpireOverdue flips every pending order whose payment deadline passed
// before now to expired and restores its stock. Each order is handled in
// its own transaction, guarded on the pending status, so overlapping
// sweeps never restore the same stock twice and a failure on one order
// does not undo the others. Returns the number of orders expired.
func (r *OrderRepository) ExpireOverdue(now time.Time) (int, error) {
	rows, err := r.db.Query(`
		SELECT id FROM orders
		WHERE status = $1 AND payment_deadline < $2`,
		models.OrderPendingPayment, now)
	if err != nil {
		return 0, fmt.Errorf("failed to get overdue orders: %w", err)
	}

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan order id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating overdue orders: %w", err)
	}
	rows.Close()

	expired := 0
	for _, id := range ids {
		flipped, err := r.expireOrder(id, now)
		if err != nil {
			return expired, err
		}
		if flipped {
			expired++
		}
	}

	return expired, nil
}

func (r *OrderRepository) expireOrder(orderID int, now time.Time) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4`,
		models.OrderExpired, now, orderID, models.OrderPendingPayment)
	if err != nil {
		return false, fmt.Errorf("failed to expire order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Paid or expired by a concurrent sweep since we listed it
		return false, nil
	}

	if err := r.restoreOrderStock(tx, orderID); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit order expiry: %w", err)
	}

	return true, nil
}

func (r *OrderRepository) restoreOrderStock(tx *sql.Tx, orderID int) error {
	rows, err := tx.Query("SELECT variant_id, quantity FROM order_items WHERE order_id = $1", orderID)
	if err != nil {
		return fmt.Errorf("failed to get order items: %w", err)
	}

	type held struct {
		variantID int
		quantity  int
	}
	var items []held
	for rows.Next() {
		var h held
		if err := rows.Scan(&h.variantID, &h.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("error iterating order items: %w", err)
	}
	rows.Close()

	for _, h := range items {
		if _, err := tx.Exec("UPDATE product_variants SET stock = stock + $1 WHERE id = $2", h.quantity, h.variantID); err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}
	}

	return nil
}

// GetOrderCount returns the total number of orders
func (r *OrderRepository) GetOrderCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get order count: %w", err)
	}
	return count, nil
}

// GetTotalRevenue returns the sum of all paid order totals in cents
func (r *OrderRepository) GetTotalRevenue() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = $1`,
		models.OrderPaid).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get total revenue: %w", err)
	}
	return total, nil
}

// GetOrderStatistics returns order counts grouped by status
func (r *OrderRepository) GetOrderStatistics() (map[string]int, error) {
	rows, err := r.db.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("failed to get order statistics: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan order statistics: %w", err)
		}
		stats[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order statistics: %w", err)
	}

	return stats, nil
}
