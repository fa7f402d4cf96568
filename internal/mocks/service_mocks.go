package mocks

import (
	"context"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSettingsProvider is a mock implementation of settings.Provider
type MockSettingsProvider struct {
	mock.Mock
}

func (m *MockSettingsProvider) Load(ctx context.Context) (models.GenerationConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.GenerationConfig), args.Error(1)
}

func (m *MockSettingsProvider) Save(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(models.GenerationConfig), args.Error(1)
}

// MockSKUService is a mock implementation of SKUService
type MockSKUService struct {
	mock.Mock
}

func (m *MockSKUService) Preview(ctx context.Context, product models.Product, override *models.GenerationConfig) (*models.GenerationResult, error) {
	args := m.Called(ctx, product, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationResult), args.Error(1)
}

func (m *MockSKUService) SaveProduct(ctx context.Context, product models.Product) (*models.GenerationResult, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationResult), args.Error(1)
}

func (m *MockSKUService) GenerateForProduct(ctx context.Context, productID string) (*models.GenerationResult, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GenerationResult), args.Error(1)
}

func (m *MockSKUService) BulkGenerate(ctx context.Context, request models.BulkGenerateRequest) (*models.BulkGenerateResult, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BulkGenerateResult), args.Error(1)
}

func (m *MockSKUService) GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredSKUs), args.Error(1)
}

func (m *MockSKUService) DeleteSKUs(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockSKUService) GetSettings(ctx context.Context) (models.GenerationConfig, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.GenerationConfig), args.Error(1)
}

func (m *MockSKUService) UpdateSettings(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(models.GenerationConfig), args.Error(1)
}
