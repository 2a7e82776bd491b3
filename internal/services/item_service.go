package services

import (
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
)

// ItemService handles business logic for items. Category references arriving
// from submitted forms are always re-resolved by name, never trusted as ids,
// so stale form data cannot move an item to an unintended category.
type ItemService struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository, publisher EventPublisher) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// Get retrieves a single item by its (category name, item name) natural key.
func (s *ItemService) Get(categoryName, itemName string) (*models.Item, error) {
	category, err := s.categoryRepo.GetByName(categoryName)
	if err != nil {
		return nil, err
	}
	return s.itemRepo.GetByName(category.ID, itemName)
}

// GetByCategory retrieves a category and its items ordered by name.
func (s *ItemService) GetByCategory(categoryName string) (*models.Category, []models.Item, error) {
	category, err := s.categoryRepo.GetByName(categoryName)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemRepo.GetByCategory(category.ID)
	if err != nil {
		return nil, nil, err
	}
	return category, items, nil
}

// GetAll retrieves every item, most recently created first.
func (s *ItemService) GetAll() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

// GetLatest retrieves the most recently created items.
func (s *ItemService) GetLatest(limit int) ([]models.Item, error) {
	return s.itemRepo.GetLatest(limit)
}

// Create creates an item under the category selected in the form. A duplicate
// (category, name) pair surfaces as repositories.ErrConflict with nothing
// written.
func (s *ItemService) Create(categoryName, name, description string, user *models.User) (*models.Item, error) {
	category, err := s.categoryRepo.GetByName(categoryName)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:        name,
		Description: description,
		CategoryID:  category.ID,
		CreatedBy:   user.ID,
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	s.publish("item.created", item)
	return item, nil
}

// Update replaces name/description of the item at (categoryName, itemName).
// The category selected in the form is re-resolved and must be the same
// category object the item currently belongs to; otherwise no mutation occurs.
func (s *ItemService) Update(categoryName, itemName, newName, newDescription, selectedCategory string, user *models.User) (*models.Item, error) {
	category, err := s.categoryRepo.GetByName(categoryName)
	if err != nil {
		return nil, err
	}
	item, err := s.itemRepo.GetByName(category.ID, itemName)
	if err != nil {
		return nil, err
	}

	selected, err := s.categoryRepo.GetByName(selectedCategory)
	if err != nil {
		return nil, ErrConfirmationMismatch
	}
	if selected.ID != category.ID {
		return nil, ErrConfirmationMismatch
	}

	item.Name = newName
	item.Description = newDescription
	item.UpdatedBy = user.ID
	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}

	s.publish("item.updated", item)
	return item, nil
}

// Delete removes the item once the posted confirmation matches both the
// item's current name and its category's name.
func (s *ItemService) Delete(categoryName, itemName, confirmName, confirmCategory string) error {
	category, err := s.categoryRepo.GetByName(categoryName)
	if err != nil {
		return err
	}
	item, err := s.itemRepo.GetByName(category.ID, itemName)
	if err != nil {
		return err
	}

	if item.Name != confirmName || category.Name != confirmCategory {
		return ErrConfirmationMismatch
	}

	if err := s.itemRepo.Delete(item.ID); err != nil {
		return err
	}

	s.publish("item.deleted", item)
	return nil
}

func (s *ItemService) publish(event string, item *models.Item) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"id":          item.ID,
		"name":        item.Name,
		"category_id": item.CategoryID,
	}
	if err := s.publisher.Publish(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for item %s: %v", event, item.ID, err)
	}
}
