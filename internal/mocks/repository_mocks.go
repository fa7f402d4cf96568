package mocks

import (
	"context"
	"time"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	args := m.Called(ctx, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListProductIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSKURepository is a mock implementation of SKURepository
type MockSKURepository struct {
	mock.Mock
}

func (m *MockSKURepository) SaveSKUs(ctx context.Context, result *models.GenerationResult, snapshot *models.Product, writeProduct, writeVariants bool) error {
	args := m.Called(ctx, result, snapshot, writeProduct, writeVariants)
	return args.Error(0)
}

func (m *MockSKURepository) GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StoredSKUs), args.Error(1)
}

func (m *MockSKURepository) DeleteSKUs(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockSKURepository) AcquireLock(ctx context.Context, productID string, ttl time.Duration) (string, bool, error) {
	args := m.Called(ctx, productID, ttl)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSKURepository) ReleaseLock(ctx context.Context, productID string, token string) error {
	args := m.Called(ctx, productID, token)
	return args.Error(0)
}

// MockOptionsRepository is a mock implementation of OptionsRepository
type MockOptionsRepository struct {
	mock.Mock
}

func (m *MockOptionsRepository) GetOptions(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockOptionsRepository) SetOptions(ctx context.Context, values map[string]string) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func (m *MockOptionsRepository) DeleteOptions(ctx context.Context, fields ...string) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}
