package repositories

import (
	"database/sql"
	"testing"
	"time"

	"bakery-commerce-platform/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// testSchema mirrors the production migrations closely enough for the
// repository queries to run unchanged against SQLite.
const testSchema = `
CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    external_id VARCHAR(255) NOT NULL UNIQUE,
    email VARCHAR(255) NOT NULL,
    first_name VARCHAR(100) NOT NULL DEFAULT '',
    last_name VARCHAR(100) NOT NULL DEFAULT '',
    role VARCHAR(20) NOT NULL DEFAULT 'customer',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(100) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category VARCHAR(100) NOT NULL DEFAULT '',
    image_url VARCHAR(500) NOT NULL DEFAULT '',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE product_variants (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
    name VARCHAR(100) NOT NULL,
    price INTEGER NOT NULL CHECK (price >= 0),
    stock INTEGER NOT NULL CHECK (stock >= 0),
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE cart_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    variant_id INTEGER NOT NULL REFERENCES product_variants(id) ON DELETE CASCADE,
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    unit_price INTEGER NOT NULL CHECK (unit_price >= 0),
    expires_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, variant_id)
);

CREATE TABLE orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL REFERENCES users(id),
    order_number VARCHAR(20) NOT NULL UNIQUE,
    total_amount INTEGER NOT NULL CHECK (total_amount > 0),
    status VARCHAR(20) NOT NULL DEFAULT 'pending_payment',
    payment_ref VARCHAR(255) NOT NULL DEFAULT '',
    billing_email VARCHAR(255) NOT NULL,
    billing_name VARCHAR(255) NOT NULL,
    payment_deadline TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE TABLE order_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    variant_id INTEGER NOT NULL REFERENCES product_variants(id),
    quantity INTEGER NOT NULL CHECK (quantity > 0),
    unit_price INTEGER NOT NULL CHECK (unit_price >= 0)
);
`

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// The reservation queries run sequentially against a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	return db
}

func seedTestUser(t *testing.T, db *sql.DB, externalID string) int {
	t.Helper()

	now := time.Now()
	var id int
	err := db.QueryRow(`
		INSERT INTO users (external_id, email, first_name, last_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, 'Test', 'Customer', 'customer', TRUE, $3, $3)
		RETURNING id`,
		externalID, externalID+"@example.com", now).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return id
}

func seedTestVariant(t *testing.T, db *sql.DB, price, stock int) int {
	t.Helper()

	now := time.Now()
	var productID int
	err := db.QueryRow(`
		INSERT INTO products (name, description, category, is_active, created_at, updated_at)
		VALUES ('Sourdough Loaf', 'Naturally leavened', 'bread', TRUE, $1, $1)
		RETURNING id`, now).Scan(&productID)
	if err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	var variantID int
	err = db.QueryRow(`
		INSERT INTO product_variants (product_id, name, price, stock, created_at)
		VALUES ($1, 'Whole', $2, $3, $4)
		RETURNING id`, productID, price, stock, now).Scan(&variantID)
	if err != nil {
		t.Fatalf("failed to seed variant: %v", err)
	}
	return variantID
}

func variantStock(t *testing.T, db *sql.DB, variantID int) int {
	t.Helper()

	var stock int
	if err := db.QueryRow("SELECT stock FROM product_variants WHERE id = $1", variantID).Scan(&stock); err != nil {
		t.Fatalf("failed to read variant stock: %v", err)
	}
	return stock
}

func seedPendingOrder(t *testing.T, db *sql.DB, userID, variantID, quantity, unitPrice int, deadline time.Time) int {
	t.Helper()

	orderNumber := models.GenerateOrderNumber()
	now := time.Now()
	var orderID int
	err := db.QueryRow(`
		INSERT INTO orders (user_id, order_number, total_amount, status, payment_ref, billing_email, billing_name, payment_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending_payment', '', 'test@example.com', 'Test Customer', $4, $5, $5)
		RETURNING id`,
		userID, orderNumber, quantity*unitPrice, deadline, now).Scan(&orderID)
	if err != nil {
		t.Fatalf("failed to seed order: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO order_items (order_id, variant_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`,
		orderID, variantID, quantity, unitPrice)
	if err != nil {
		t.Fatalf("failed to seed order item: %v", err)
	}

	return orderID
}
