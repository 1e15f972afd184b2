package services_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) All() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByName(name string) ([]models.Product, error) {
	args := m.Called(name)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(category models.Category) ([]models.Product, error) {
	args := m.Called(category)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByAvailability(available bool) ([]models.Product, error) {
	args := m.Called(available)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(action string, event map[string]interface{}) error {
	args := m.Called(action, event)
	return args.Error(0)
}

func hammerPayload() models.ProductPayload {
	price := decimal.RequireFromString("19.99")
	available := true
	return models.ProductPayload{
		Name:        "Hammer",
		Description: "Steel",
		Price:       &price,
		Available:   &available,
		Category:    "TOOLS",
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 1, Name: "Hammer", Category: models.CategoryTools},
		{ID: 2, Name: "Shirt", Category: models.CategoryCloths},
	}

	mockRepo.On("All").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: 1, Name: "Hammer"}

	// Test successful retrieval
	mockRepo.On("FindByID", uint(1)).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("FindByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	product, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductsByFilters(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	tools := []models.Product{{ID: 1, Name: "Hammer", Category: models.CategoryTools}}

	mockRepo.On("FindByName", "Hammer").Return(tools, nil).Once()
	byName, err := service.GetProductsByName("Hammer")
	assert.NoError(t, err)
	assert.Equal(t, tools, byName)

	mockRepo.On("FindByCategory", models.CategoryTools).Return(tools, nil).Once()
	byCategory, err := service.GetProductsByCategory(models.CategoryTools)
	assert.NoError(t, err)
	assert.Equal(t, tools, byCategory)

	mockRepo.On("FindByAvailability", false).Return([]models.Product{}, nil).Once()
	byAvailability, err := service.GetProductsByAvailability(false)
	assert.NoError(t, err)
	assert.Empty(t, byAvailability)

	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	// Test successful creation with a lifecycle event
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", "created", mock.Anything).Return(nil).Once()

	product, err := service.CreateProduct(hammerPayload())
	assert.NoError(t, err)
	assert.Equal(t, "Hammer", product.Name)
	assert.Equal(t, models.CategoryTools, product.Category)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	_, err = service.CreateProduct(hammerPayload())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProductRejectsInvalidPayload(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	payload := hammerPayload()
	payload.Category = "BOGUS"

	_, err := service.CreateProduct(payload)
	assert.Error(t, err)

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// The store is never touched for an invalid payload.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateProductPublishFailureIsNotFatal(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", "created", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	product, err := service.CreateProduct(hammerPayload())
	assert.NoError(t, err)
	assert.NotNil(t, product)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	existing := &models.Product{ID: 1, Name: "Hammer", Category: models.CategoryTools}

	// Test successful update
	mockRepo.On("FindByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", "updated", mock.Anything).Return(nil).Once()

	payload := hammerPayload()
	payload.Name = "Sledgehammer"
	product, err := service.UpdateProduct(1, payload)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.Equal(t, "Sledgehammer", product.Name)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestProductService_UpdateProductNotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("FindByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()

	_, err := service.UpdateProduct(99, hammerPayload())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// The store is never written to when the ID does not resolve.
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockPublisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockPublisher)

	// Test successful deletion with a lifecycle event
	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	mockPublisher.On("PublishProductEvent", "deleted", mock.Anything).Return(nil).Once()
	err := service.DeleteProduct(1)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)

	// Test deletion failure (e.g., database error)
	mockRepo.On("Delete", uint(2)).Return(fmt.Errorf("database error")).Once()
	err = service.DeleteProduct(2)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}
