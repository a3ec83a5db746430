package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bakery-commerce-platform/internal/models"
)

// UserRepository handles database operations for users. Accounts originate
// at the identity provider; this repository only mirrors the subset of
// profile data the shop needs.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UserSearchFilters represents filters for user search
type UserSearchFilters struct {
	Query  string
	Role   models.UserRole
	Limit  int
	Offset int
}

// UpsertByExternalID creates or refreshes the local mirror of an identity
// provider account, keyed by the provider's subject identifier
func (r *UserRepository) UpsertByExternalID(req *models.UserCreateRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		INSERT INTO users (external_id, email, first_name, last_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $6)
		ON CONFLICT (external_id)
		DO UPDATE SET email = EXCLUDED.email, first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name, updated_at = EXCLUDED.updated_at
		RETURNING id, external_id, email, first_name, last_name, role, is_active, created_at, updated_at`

	user := &models.User{}
	err := r.db.QueryRow(query,
		req.ExternalID,
		req.Email,
		req.FirstName,
		req.LastName,
		req.Role,
		now,
	).Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, external_id, email, first_name, last_name, role, is_active, created_at, updated_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRow(query, id))
}

// GetByExternalID retrieves a user by the identity provider's subject identifier
func (r *UserRepository) GetByExternalID(externalID string) (*models.User, error) {
	query := `
		SELECT id, external_id, email, first_name, last_name, role, is_active, created_at, updated_at
		FROM users
		WHERE external_id = $1`

	return r.scanUser(r.db.QueryRow(query, externalID))
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Search retrieves users matching the given filters
func (r *UserRepository) Search(filters UserSearchFilters) ([]*models.User, error) {
	query := `
		SELECT id, external_id, email, first_name, last_name, role, is_active, created_at, updated_at
		FROM users
		WHERE 1=1`

	var args []interface{}
	argIndex := 1

	if filters.Query != "" {
		query += " AND (email LIKE $" + strconv.Itoa(argIndex) + " OR first_name LIKE $" + strconv.Itoa(argIndex) + " OR last_name LIKE $" + strconv.Itoa(argIndex) + ")"
		args = append(args, "%"+filters.Query+"%")
		argIndex++
	}

	if filters.Role != "" {
		query += " AND role = $" + strconv.Itoa(argIndex)
		args = append(args, filters.Role)
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
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.ExternalID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// SetActive activates or suspends a user account
func (r *UserRepository) SetActive(id int, active bool) error {
	result, err := r.db.Exec(`
		UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// GetUserCount returns the total number of users
func (r *UserRepository) GetUserCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get user count: %w", err)
	}
	return count, nil
}
