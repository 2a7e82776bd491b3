package services

import (
	"errors"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ErrConfirmationMismatch indicates the posted confirmation field did not
// resolve to the loaded record; the mutation is not performed.
var ErrConfirmationMismatch = errors.New("confirmation does not match the loaded record")

// CategoryService handles business logic for categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// GetAll retrieves all categories ordered by name.
func (s *CategoryService) GetAll() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetByName retrieves a single category by name.
func (s *CategoryService) GetByName(name string) (*models.Category, error) {
	return s.categoryRepo.GetByName(name)
}

// Create creates a new category owned by the given user. A duplicate name
// surfaces as repositories.ErrConflict with nothing written.
func (s *CategoryService) Create(name, description string, user *models.User) (*models.Category, error) {
	category := &models.Category{
		Name:        name,
		Description: description,
		CreatedBy:   user.ID,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.publish("category.created", category)
	return category, nil
}

// Update replaces name/description of the category loaded by currentName.
// The confirmName field is re-resolved and must identify the same category,
// otherwise no mutation occurs.
func (s *CategoryService) Update(currentName, newName, newDescription, confirmName string, user *models.User) (*models.Category, error) {
	current, err := s.categoryRepo.GetByName(currentName)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.categoryRepo.GetByName(confirmName)
	if err != nil {
		return nil, ErrConfirmationMismatch
	}
	if confirmed.ID != current.ID {
		return nil, ErrConfirmationMismatch
	}

	current.Name = newName
	current.Description = newDescription
	current.UpdatedBy = user.ID
	if err := s.categoryRepo.Update(current); err != nil {
		return nil, err
	}

	s.publish("category.updated", current)
	return current, nil
}

// Delete removes the category and all its items once the posted confirmation
// matches the category's current name.
func (s *CategoryService) Delete(name, confirmName string) error {
	current, err := s.categoryRepo.GetByName(name)
	if err != nil {
		return err
	}
	if current.Name != confirmName {
		return ErrConfirmationMismatch
	}

	if err := s.categoryRepo.DeleteCascade(current); err != nil {
		return err
	}

	s.publish("category.deleted", current)
	return nil
}

func (s *CategoryService) publish(event string, category *models.Category) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"id":   category.ID,
		"name": category.Name,
	}
	if err := s.publisher.Publish(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for category %s: %v", event, category.ID, err)
	}
}
