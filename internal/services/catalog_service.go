package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"
)

// LatestItemLimit is how many of the most recent items the home view shows.
const LatestItemLimit = 10

// CatalogService assembles the read-only aggregate views over categories and
// items.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
	}
}

// Home returns all categories plus the most recent items for the home view.
func (s *CatalogService) Home() ([]models.Category, []models.Item, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	latest, err := s.itemRepo.GetLatest(LatestItemLimit)
	if err != nil {
		return nil, nil, err
	}
	return categories, latest, nil
}

// Full returns all categories and every item, most recently created first.
func (s *CatalogService) Full() ([]models.Category, []models.Item, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	items, err := s.itemRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	return categories, items, nil
}

// CatalogEntry pairs a category with its items in the combined catalog
// document.
type CatalogEntry struct {
	Category models.CategoryDTO `json:"Category"`
	Items    []models.ItemDTO   `json:"Items"`
}

// Document builds the combined catalog document: every category with the
// items it owns.
func (s *CatalogService) Document() ([]CatalogEntry, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(categories))
	for i := range categories {
		items, err := s.itemRepo.GetByCategory(categories[i].ID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, CatalogEntry{
			Category: categories[i].DTO(),
			Items:    models.ItemDTOs(items),
		})
	}
	return entries, nil
}
