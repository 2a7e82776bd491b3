package repositories

import (
	"catalog/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	// DeleteCascade removes the category and all items it owns in one
	// transaction. Items of other categories are untouched.
	DeleteCascade(category *models.Category) error
}
