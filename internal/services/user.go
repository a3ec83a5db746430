package services

import (
	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
)

// UserService handles user account business logic. Authentication lives at
// the identity provider; this service keeps the local mirror in sync.
type UserService struct {
	userRepo UserRepository
}

// UserRepository interface for user data operations
type UserRepository interface {
	UpsertByExternalID(req *models.UserCreateRequest) (*models.User, error)
	GetByID(id int) (*models.User, error)
	GetByExternalID(externalID string) (*models.User, error)
	Search(filters repositories.UserSearchFilters) ([]*models.User, error)
	SetActive(id int, active bool) error
	GetUserCount() (int, error)
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// SyncFromIdentity ensures a local record exists for an authenticated
// identity provider subject, refreshing profile data on every login
func (s *UserService) SyncFromIdentity(externalID, email, firstName, lastName string) (*models.User, error) {
	return s.userRepo.UpsertByExternalID(&models.UserCreateRequest{
		ExternalID: externalID,
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Role:       models.RoleCustomer,
	})
}

// GetUser returns a user by ID
func (s *UserService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetByExternalID returns a user by the identity provider's subject
func (s *UserService) GetByExternalID(externalID string) (*models.User, error) {
	return s.userRepo.GetByExternalID(externalID)
}

// Admin operations

// ListUsers returns users matching the filters
func (s *UserService) ListUsers(filters repositories.UserSearchFilters) ([]*models.User, error) {
	return s.userRepo.Search(filters)
}

// SuspendUser deactivates a user account
func (s *UserService) SuspendUser(id int) error {
	return s.userRepo.SetActive(id, false)
}

// ActivateUser reactivates a user account
func (s *UserService) ActivateUser(id int) error {
	return s.userRepo.SetActive(id, true)
}

// GetUserCount returns the total number of users
func (s *UserService) GetUserCount() (int, error) {
	return s.userRepo.GetUserCount()
}
