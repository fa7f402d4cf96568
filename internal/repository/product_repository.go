package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const productKeyPrefix = "product:"

// ProductRepository stores catalog snapshots the generator reads from.
// Snapshots are returned with every variant, whatever its status.
type ProductRepository interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
	ListProductIDs(ctx context.Context) ([]string, error)
}

// productRepository implements ProductRepository interface
type productRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(client *redis.Client, logger *zap.Logger) ProductRepository {
	return &productRepository{
		client: client,
		logger: logger,
	}
}

// GetProduct retrieves a product snapshot from Redis
func (r *productRepository) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	data, err := r.client.Get(ctx, r.getProductKey(productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrProductNotFound
		}
		r.logger.Error("Failed to get product from Redis",
			zap.String("productID", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	var product models.Product
	if err := json.Unmarshal([]byte(data), &product); err != nil {
		r.logger.Error("Failed to unmarshal product data",
			zap.String("productID", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}

// marshalProduct encodes a snapshot in its stored form. Snapshots are
// written by SKURepository.SaveSKUs together with the generated skus.
func marshalProduct(product *models.Product) ([]byte, error) {
	data, err := json.Marshal(product)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product %s: %w", product.ID, err)
	}
	return data, nil
}

// ProductExists checks if a product snapshot exists in Redis
func (r *productRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.getProductKey(productID)).Result()
	if err != nil {
		r.logger.Error("Failed to check product existence",
			zap.String("productID", productID),
			zap.Error(err))
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}

	return exists > 0, nil
}

// ListProductIDs returns the ids of every stored snapshot
func (r *productRepository) ListProductIDs(ctx context.Context) ([]string, error) {
	var ids []string

	iter := r.client.Scan(ctx, 0, productKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), productKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("Failed to scan product keys", zap.Error(err))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return ids, nil
}

func (r *productRepository) getProductKey(productID string) string {
	return productKeyPrefix + productID
}
