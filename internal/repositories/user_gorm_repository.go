package repositories

import (
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves all users from the database.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Preload("Roles").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", translate(err))
	}
	return users, nil
}

// GetByEmailAndLoginType retrieves a user by the (email, login-type) pair
// with roles preloaded.
func (r *GORMUserRepository) GetByEmailAndLoginType(email, loginTypeID string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Roles").
		First(&user, "email = ? AND login_type_id = ?", email, loginTypeID).Error
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", email, translate(err))
	}
	return &user, nil
}

// Create inserts a new user along with its role associations.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %q: %w", user.Email, translate(err))
	}
	return nil
}

// Update persists name/picture refreshes on an existing user. Role
// associations are not touched here.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Omit("Roles").Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %q: %w", user.Email, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q for update: %w", user.Email, ErrNotFound)
	}
	return nil
}
