package services_test

import (
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll() ([]models.Item, error) {
	args := m.Called()
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetLatest(limit int) ([]models.Item, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByCategory(categoryID string) ([]models.Item, error) {
	args := m.Called(categoryID)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByName(categoryID, name string) (*models.Item, error) {
	args := m.Called(categoryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestItemService_CreateResolvesCategoryByName(t *testing.T) {
	mockItems := new(MockItemRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewItemService(mockItems, mockCategories, nil)

	user := &models.User{ID: "user-1"}
	soccer := &models.Category{ID: "cat-1", Name: "Soccer"}

	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Once()
	mockItems.On("Create", mock.AnythingOfType("*models.Item")).Return(nil).Once()

	item, err := service.Create("Soccer", "Cleats", "shoes", user)
	assert.NoError(t, err)
	assert.Equal(t, "cat-1", item.CategoryID)
	assert.Equal(t, "user-1", item.CreatedBy)
	mockItems.AssertExpectations(t)
	mockCategories.AssertExpectations(t)

	// Unknown category: creation never reaches the item repository
	mockCategories.On("GetByName", "Gone").Return(nil, repositories.ErrNotFound).Once()
	item, err = service.Create("Gone", "Cleats", "shoes", user)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, item)
	mockItems.AssertNotCalled(t, "Create", mock.Anything)
}

func TestItemService_CreateConflict(t *testing.T) {
	mockItems := new(MockItemRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewItemService(mockItems, mockCategories, nil)

	user := &models.User{ID: "user-1"}
	soccer := &models.Category{ID: "cat-1", Name: "Soccer"}

	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Once()
	mockItems.On("Create", mock.AnythingOfType("*models.Item")).Return(repositories.ErrConflict).Once()

	item, err := service.Create("Soccer", "Cleats", "shoes", user)
	assert.ErrorIs(t, err, repositories.ErrConflict)
	assert.Nil(t, item)
	mockItems.AssertExpectations(t)
}

func TestItemService_UpdateCategoryIdentityCheck(t *testing.T) {
	mockItems := new(MockItemRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewItemService(mockItems, mockCategories, nil)

	user := &models.User{ID: "user-1"}
	soccer := &models.Category{ID: "cat-1", Name: "Soccer"}
	hockey := &models.Category{ID: "cat-2", Name: "Hockey"}
	cleats := &models.Item{ID: "item-1", Name: "Cleats", CategoryID: "cat-1"}

	// Form selects a different category than the item's own: identity check
	// fails and no write happens.
	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Once()
	mockItems.On("GetByName", "cat-1", "Cleats").Return(cleats, nil).Once()
	mockCategories.On("GetByName", "Hockey").Return(hockey, nil).Once()

	updated, err := service.Update("Soccer", "Cleats", "Boots", "desc", "Hockey", user)
	assert.ErrorIs(t, err, services.ErrConfirmationMismatch)
	assert.Nil(t, updated)
	mockItems.AssertNotCalled(t, "Update", mock.Anything)
	mockCategories.AssertExpectations(t)

	// Same category selected: update proceeds
	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Twice()
	mockItems.On("GetByName", "cat-1", "Cleats").Return(cleats, nil).Once()
	mockItems.On("Update", mock.AnythingOfType("*models.Item")).Return(nil).Once()

	updated, err = service.Update("Soccer", "Cleats", "Boots", "desc", "Soccer", user)
	assert.NoError(t, err)
	assert.Equal(t, "Boots", updated.Name)
	assert.Equal(t, "user-1", updated.UpdatedBy)
	mockItems.AssertExpectations(t)
}

func TestItemService_DeleteConfirmation(t *testing.T) {
	mockItems := new(MockItemRepository)
	mockCategories := new(MockCategoryRepository)
	service := services.NewItemService(mockItems, mockCategories, nil)

	soccer := &models.Category{ID: "cat-1", Name: "Soccer"}
	cleats := &models.Item{ID: "item-1", Name: "Cleats", CategoryID: "cat-1"}

	// Wrong item-name confirmation: nothing deleted
	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Once()
	mockItems.On("GetByName", "cat-1", "Cleats").Return(cleats, nil).Once()

	err := service.Delete("Soccer", "Cleats", "Boots", "Soccer")
	assert.ErrorIs(t, err, services.ErrConfirmationMismatch)
	mockItems.AssertNotCalled(t, "Delete", mock.Anything)

	// Matching confirmations: delete proceeds
	mockCategories.On("GetByName", "Soccer").Return(soccer, nil).Once()
	mockItems.On("GetByName", "cat-1", "Cleats").Return(cleats, nil).Once()
	mockItems.On("Delete", "item-1").Return(nil).Once()

	err = service.Delete("Soccer", "Cleats", "Cleats", "Soccer")
	assert.NoError(t, err)
	mockItems.AssertExpectations(t)
}
