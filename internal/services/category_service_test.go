package services_test

import (
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) GetAll() ([]models.Category, error) {
	args := m.Called()
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteCascade(category *models.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, payload map[string]interface{}) error {
	args := m.Called(event, payload)
	return args.Error(0)
}

func TestCategoryService_Create(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewCategoryService(mockRepo, mockPub)

	user := &models.User{ID: "user-1", Email: "a@x.com"}

	// Test successful creation
	mockRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()
	mockPub.On("Publish", "category.created", mock.Anything).Return(nil).Once()

	category, err := service.Create("Soccer", "ball game", user)
	assert.NoError(t, err)
	assert.Equal(t, "Soccer", category.Name)
	assert.Equal(t, "ball game", category.Description)
	assert.Equal(t, "user-1", category.CreatedBy)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)

	// Test uniqueness conflict: the error passes through, nothing is published
	mockRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(repositories.ErrConflict).Once()
	category, err = service.Create("Soccer", "ball game", user)
	assert.ErrorIs(t, err, repositories.ErrConflict)
	assert.Nil(t, category)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestCategoryService_Update(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo, nil)

	user := &models.User{ID: "user-1"}
	current := &models.Category{ID: "cat-1", Name: "Soccer", Description: "ball game"}

	// Successful edit: confirmation resolves to the same category
	mockRepo.On("GetByName", "Soccer").Return(current, nil).Twice()
	mockRepo.On("Update", mock.AnythingOfType("*models.Category")).Return(nil).Once()

	updated, err := service.Update("Soccer", "Footy", "new desc", "Soccer", user)
	assert.NoError(t, err)
	assert.Equal(t, "Footy", updated.Name)
	assert.Equal(t, "user-1", updated.UpdatedBy)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateConfirmationMismatch(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo, nil)

	user := &models.User{ID: "user-1"}
	current := &models.Category{ID: "cat-1", Name: "Soccer"}
	other := &models.Category{ID: "cat-2", Name: "Hockey"}

	// Confirmation resolves to a different category: no Update call at all
	mockRepo.On("GetByName", "Soccer").Return(current, nil).Once()
	mockRepo.On("GetByName", "Hockey").Return(other, nil).Once()

	updated, err := service.Update("Soccer", "Footy", "new desc", "Hockey", user)
	assert.ErrorIs(t, err, services.ErrConfirmationMismatch)
	assert.Nil(t, updated)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)

	// Confirmation naming a nonexistent category is also a mismatch
	mockRepo.On("GetByName", "Soccer").Return(current, nil).Once()
	mockRepo.On("GetByName", "Gone").Return(nil, repositories.ErrNotFound).Once()

	updated, err = service.Update("Soccer", "Footy", "new desc", "Gone", user)
	assert.ErrorIs(t, err, services.ErrConfirmationMismatch)
	assert.Nil(t, updated)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateConflict(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo, nil)

	user := &models.User{ID: "user-1"}
	current := &models.Category{ID: "cat-1", Name: "Soccer"}

	// Renaming onto an existing name surfaces the conflict unchanged
	mockRepo.On("GetByName", "Soccer").Return(current, nil).Twice()
	mockRepo.On("Update", mock.AnythingOfType("*models.Category")).Return(repositories.ErrConflict).Once()

	updated, err := service.Update("Soccer", "Hockey", "desc", "Soccer", user)
	assert.ErrorIs(t, err, repositories.ErrConflict)
	assert.Nil(t, updated)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_Delete(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	mockPub := new(MockEventPublisher)
	service := services.NewCategoryService(mockRepo, mockPub)

	current := &models.Category{ID: "cat-1", Name: "Soccer"}

	// Confirmation matches: cascade delete proceeds
	mockRepo.On("GetByName", "Soccer").Return(current, nil).Once()
	mockRepo.On("DeleteCascade", current).Return(nil).Once()
	mockPub.On("Publish", "category.deleted", mock.Anything).Return(nil).Once()

	err := service.Delete("Soccer", "Soccer")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPub.AssertExpectations(t)
}

func TestCategoryService_DeleteConfirmationMismatch(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo, nil)

	current := &models.Category{ID: "cat-1", Name: "Soccer"}

	mockRepo.On("GetByName", "Soccer").Return(current, nil).Once()

	err := service.Delete("Soccer", "Hockey")
	assert.ErrorIs(t, err, services.ErrConfirmationMismatch)
	mockRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything)
	mockRepo.AssertExpectations(t)
}
