package repositories

import (
	"catalog/internal/models"
)

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	GetAll() ([]models.Item, error)
	GetLatest(limit int) ([]models.Item, error)
	GetByCategory(categoryID string) ([]models.Item, error)
	GetByName(categoryID, name string) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id string) error
}
