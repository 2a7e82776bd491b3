package repositories

import (
	"fmt"

	"catalog/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories ordered by name.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", translate(err))
	}
	return categories, nil
}

// GetByName retrieves a single category by its unique name.
func (r *GORMCategoryRepository) GetByName(name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("category %q: %w", name, translate(err))
	}
	return &category, nil
}

// Create inserts a new category. A unique-name violation surfaces as
// ErrConflict with the insert rolled back.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category %q: %w", category.Name, translate(err))
	}
	return nil
}

// Update persists changes to an existing category. Renaming onto an existing
// name surfaces as ErrConflict with the update rolled back.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category %q: %w", category.Name, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category %q for update: %w", category.Name, ErrNotFound)
	}
	return nil
}

// DeleteCascade deletes the category's items then the category itself inside
// a single transaction, so a failure leaves no partial state. Deletes are
// unscoped: the unique name index covers soft-deleted rows, which would block
// re-creating a category under the deleted name.
func (r *GORMCategoryRepository) DeleteCascade(category *models.Category) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&models.Item{}, "category_id = ?", category.ID).Error; err != nil {
			return fmt.Errorf("failed to delete items of category %q: %w", category.Name, translate(err))
		}
		res := tx.Unscoped().Delete(&models.Category{}, "id = ?", category.ID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category %q: %w", category.Name, translate(res.Error))
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category %q for deletion: %w", category.Name, ErrNotFound)
		}
		return nil
	})
	return err
}
