package repositories

import (
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items, most recently created first.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", translate(err))
	}
	return items, nil
}

// GetLatest retrieves the most recent items by creation timestamp descending.
func (r *GORMItemRepository) GetLatest(limit int) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Order("created_at desc").Limit(limit).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest items: %w", translate(err))
	}
	return items, nil
}

// GetByCategory retrieves the items of one category ordered by name.
func (r *GORMItemRepository) GetByCategory(categoryID string) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Order("name").Find(&items, "category_id = ?", categoryID).Error; err != nil {
		return nil, fmt.Errorf("failed to get items of category %s: %w", categoryID, translate(err))
	}
	return items, nil
}

// GetByName retrieves a single item by its (category, name) natural key.
func (r *GORMItemRepository) GetByName(categoryID, name string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "category_id = ? AND name = ?", categoryID, name).Error; err != nil {
		return nil, fmt.Errorf("item %q: %w", name, translate(err))
	}
	return &item, nil
}

// Create inserts a new item. A (category, name) violation surfaces as
// ErrConflict with the insert rolled back.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item %q: %w", item.Name, translate(err))
	}
	return nil
}

// Update persists changes to an existing item, with the same conflict
// handling as Create.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update item %q: %w", item.Name, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %q for update: %w", item.Name, ErrNotFound)
	}
	return nil
}

// Delete removes an item by its ID. Unscoped so the (category, name) unique
// index frees up for a later re-creation under the same key.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Unscoped().Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}
