package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/services"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(filter repositories.ProductFilter, offset, limit int) ([]models.Product, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsByID(id uint) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
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

func validPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":        "MacBook Pro 13.3 Retina",
		"description": "M1 Chip 256 GB - Space Gray",
		"image":       "https://example.com/macbook.jpg",
		"brand":       "Apple",
		"price":       1299.99,
		"price_sale":  1199.99,
		"category":    "Laptops",
		"stock":       float64(25),
	}
}

func TestProductService_Create(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.Create(validPayload())

	assert.NoError(t, err)
	assert.Equal(t, "MacBook Pro 13.3 Retina", product.Name)
	assert.Equal(t, "Apple", product.Brand)
	assert.Equal(t, 1299.99, product.Price)
	assert.Equal(t, 1199.99, product.PriceSale)
	assert.Equal(t, "Laptops", product.Category)
	assert.Equal(t, 25, product.Stock)
	if assert.NotNil(t, product.Description) {
		assert.Equal(t, "M1 Chip 256 GB - Space Gray", *product.Description)
	}
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	payload := validPayload()
	payload["name"] = ""
	delete(payload, "price")
	payload["stock"] = 1.5

	product, err := service.Create(payload)

	assert.Nil(t, product)
	var vErr *services.ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Equal(t, []string{
			"The name field is required.",
			"The price field is required.",
			"The stock must be an integer.",
		}, vErr.Messages)
	}
	// Nothing must be persisted on validation failure.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProductService_CreateDescriptionOptional(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	payload := validPayload()
	delete(payload, "description")
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.Create(payload)

	assert.NoError(t, err)
	assert.Nil(t, product.Description)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreatePersistenceFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()

	product, err := service.Create(validPayload())

	assert.Nil(t, product)
	var pErr *services.PersistenceError
	assert.ErrorAs(t, err, &pErr)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Get(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expected := &models.Product{ID: 1, Name: "Product A", Price: 10.0, Stock: 100}

	mockRepo.On("GetByID", uint(1)).Return(expected, nil).Once()
	product, err := service.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, product)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()
	product, err = service.Get(99)
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateNotFoundBeforeValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrProductNotFound).Once()

	// The payload is invalid too; not found must win because the lookup
	// happens before validation.
	product, err := service.Update(99, map[string]interface{}{"name": ""})

	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdatePayloadIDMustMatchPath(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	existing := &models.Product{ID: 1, Name: "Product A"}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	// id 2 exists in the store but differs from the path id.
	mockRepo.On("ExistsByID", uint(2)).Return(true, nil).Once()

	payload := validPayload()
	payload["id"] = float64(2)
	product, err := service.Update(1, payload)

	assert.Nil(t, product)
	var vErr *services.ValidationError
	if assert.ErrorAs(t, err, &vErr) {
		assert.Contains(t, vErr.Messages, "The selected id is invalid.")
	}
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Update(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	existing := &models.Product{ID: 1, Name: "Product A"}
	mockRepo.On("GetByID", uint(1)).Return(existing, nil).Once()
	mockRepo.On("ExistsByID", uint(1)).Return(true, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Product")).Return(nil).Once()

	payload := validPayload()
	payload["id"] = float64(1)
	product, err := service.Update(1, payload)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.Equal(t, "MacBook Pro 13.3 Retina", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_Delete(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	assert.NoError(t, service.Delete(1))

	mockRepo.On("Delete", uint(99)).Return(repositories.ErrProductNotFound).Once()
	assert.ErrorIs(t, service.Delete(99), repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListDefaults(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	items := []models.Product{{ID: 1}, {ID: 2}}
	mockRepo.On("List", repositories.ProductFilter{}, 0, 10).Return(items, int64(25), nil).Once()

	result, err := service.List(services.ListQuery{})

	assert.NoError(t, err)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, 1, result.From)
	assert.Equal(t, 2, result.To)
	assert.Equal(t, 1, result.CurrentPage)
	assert.Equal(t, 3, result.LastPage)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListSecondPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	items := []models.Product{{ID: 6}, {ID: 7}}
	mockRepo.On("List", repositories.ProductFilter{}, 5, 5).Return(items, int64(7), nil).Once()

	result, err := service.List(services.ListQuery{Page: 2, RPP: 5})

	assert.NoError(t, err)
	assert.Equal(t, 6, result.From)
	assert.Equal(t, 7, result.To)
	assert.Equal(t, 2, result.LastPage)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListEmptyPage(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("List", repositories.ProductFilter{}, 0, 10).Return([]models.Product{}, int64(0), nil).Once()

	result, err := service.List(services.ListQuery{})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), result.Total)
	assert.Zero(t, result.From)
	assert.Zero(t, result.To)
	assert.Equal(t, 1, result.LastPage)
	mockRepo.AssertExpectations(t)
}
