package repositories

import "catalog/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll() ([]models.User, error)
	// GetByEmailAndLoginType resolves a user by the (email, login-type)
	// natural key, with the role collection preloaded.
	GetByEmailAndLoginType(email, loginTypeID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
}
