package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UserRole represents the role of a user in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User represents a customer or admin known to the store. Authentication is
// delegated to the external identity provider; this record only mirrors the
// identity the provider asserts plus store-side state (active flag, role).
type User struct {
	ID         int       `json:"id" db:"id"`
	ExternalID string    `json:"external_id" db:"external_id"` // Subject claim from the identity provider
	Email      string    `json:"email" db:"email"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Role       UserRole  `json:"role" db:"role"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// UserCreateRequest represents the data needed to register a user record
type UserCreateRequest struct {
	ExternalID string   `json:"external_id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Role       UserRole `json:"role"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user data
func (u *User) Validate() error {
	if err := validateUserEmail(u.Email); err != nil {
		return err
	}

	return validateUserRole(u.Role)
}

// Validate validates user creation data
func (req *UserCreateRequest) Validate() error {
	if req.ExternalID == "" {
		return errors.New("external id is required")
	}

	if err := validateUserEmail(req.Email); err != nil {
		return err
	}

	return validateUserRole(req.Role)
}

// validateUserEmail validates a user email address
func validateUserEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

// validateUserRole validates a user role
func validateUserRole(role UserRole) error {
	switch role {
	case RoleCustomer, RoleAdmin:
		return nil
	default:
		return errors.New("invalid user role")
	}
}

// FullName returns the user's full name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
