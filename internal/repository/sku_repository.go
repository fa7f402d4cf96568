package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	skuKeyPrefix        = "skus:"
	skuVariantKeySuffix = ":variants"
	skuLockPrefix       = "sku_lock:"

	productSKUField = "product"
	updatedAtField  = "updated_at"
)

// releaseLockScript deletes the lock only while it still holds the caller's token
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SKURepository persists generated SKUs
type SKURepository interface {
	SaveSKUs(ctx context.Context, result *models.GenerationResult, snapshot *models.Product, writeProduct, writeVariants bool) error
	GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error)
	DeleteSKUs(ctx context.Context, productID string) error
	AcquireLock(ctx context.Context, productID string, ttl time.Duration) (string, bool, error)
	ReleaseLock(ctx context.Context, productID string, token string) error
}

// skuRepository implements SKURepository interface
type skuRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSKURepository creates a new sku repository
func NewSKURepository(client *redis.Client, logger *zap.Logger) SKURepository {
	return &skuRepository{
		client: client,
		logger: logger,
	}
}

// SaveSKUs writes the product SKU and replaces the variant SKUs of a product.
// Each part is only written when its flag is set. A non-nil snapshot is
// stored in the same transaction.
func (r *skuRepository) SaveSKUs(ctx context.Context, result *models.GenerationResult, snapshot *models.Product, writeProduct, writeVariants bool) error {
	productID := result.ProductID.String()
	if snapshot == nil && !writeProduct && !writeVariants {
		r.logger.Debug("Nothing to persist for product",
			zap.String("productID", productID))
		return nil
	}

	var snapshotData []byte
	if snapshot != nil {
		data, err := marshalProduct(snapshot)
		if err != nil {
			return err
		}
		snapshotData = data
	}

	key := r.getSKUKey(productID)
	variantKey := r.getVariantKey(productID)

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if snapshotData != nil {
			pipe.Set(ctx, productKeyPrefix+snapshot.ID.String(), snapshotData, 0)
		}

		if writeProduct || writeVariants {
			fields := map[string]interface{}{
				updatedAtField: time.Now().UTC().Format(time.RFC3339Nano),
			}
			if writeProduct {
				fields[productSKUField] = result.ProductSKU
			}
			pipe.HSet(ctx, key, fields)
		}

		if writeVariants {
			pipe.Del(ctx, variantKey)
			if len(result.VariantSKUs) > 0 {
				variants := make(map[string]interface{}, len(result.VariantSKUs))
				for variantID, sku := range result.VariantSKUs {
					variants[variantID.String()] = sku
				}
				pipe.HSet(ctx, variantKey, variants)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save skus to Redis",
			zap.String("productID", productID),
			zap.Error(err))
		return fmt.Errorf("failed to save skus: %w", err)
	}

	r.logger.Debug("SKUs saved successfully",
		zap.String("productID", productID),
		zap.Bool("snapshot", snapshot != nil),
		zap.Bool("productSKU", writeProduct),
		zap.Int("variantSKUs", len(result.VariantSKUs)))

	return nil
}

// GetSKUs retrieves the stored SKUs of a product
func (r *skuRepository) GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error) {
	pipe := r.client.Pipeline()
	productCmd := pipe.HGetAll(ctx, r.getSKUKey(productID))
	variantCmd := pipe.HGetAll(ctx, r.getVariantKey(productID))
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		r.logger.Error("Failed to get skus from Redis",
			zap.String("productID", productID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get skus: %w", err)
	}

	fields := productCmd.Val()
	variants := variantCmd.Val()
	if len(fields) == 0 && len(variants) == 0 {
		return nil, models.ErrSKUsNotFound
	}

	stored := &models.StoredSKUs{
		ProductID:   models.ID(productID),
		VariantSKUs: make(map[models.ID]string, len(variants)),
	}
	if sku, ok := fields[productSKUField]; ok {
		stored.ProductSKU = &sku
	}
	if raw, ok := fields[updatedAtField]; ok {
		if updatedAt, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			stored.UpdatedAt = updatedAt
		}
	}
	for variantID, sku := range variants {
		stored.VariantSKUs[models.ID(variantID)] = sku
	}

	return stored, nil
}

// DeleteSKUs removes everything stored for a product
func (r *skuRepository) DeleteSKUs(ctx context.Context, productID string) error {
	err := r.client.Del(ctx, r.getSKUKey(productID), r.getVariantKey(productID)).Err()
	if err != nil {
		r.logger.Error("Failed to delete skus from Redis",
			zap.String("productID", productID),
			zap.Error(err))
		return fmt.Errorf("failed to delete skus: %w", err)
	}

	r.logger.Debug("SKUs deleted successfully", zap.String("productID", productID))
	return nil
}

// AcquireLock acquires a distributed lock for sku generation of one product.
// The returned token identifies this holder and must be passed to ReleaseLock.
func (r *skuRepository) AcquireLock(ctx context.Context, productID string, ttl time.Duration) (string, bool, error) {
	lockKey := r.getLockKey(productID)
	token := uuid.NewString()

	// Use SET with NX (only if not exists) and EX (expiry) options
	acquired, err := r.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		r.logger.Error("Failed to acquire sku lock",
			zap.String("productID", productID),
			zap.Error(err))
		return "", false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return "", false, nil
	}

	return token, true, nil
}

// ReleaseLock releases the generation lock of a product if token still owns it
func (r *skuRepository) ReleaseLock(ctx context.Context, productID string, token string) error {
	lockKey := r.getLockKey(productID)

	released, err := releaseLockScript.Run(ctx, r.client, []string{lockKey}, token).Int()
	if err != nil {
		r.logger.Error("Failed to release sku lock",
			zap.String("productID", productID),
			zap.Error(err))
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if released == 0 {
		r.logger.Warn("SKU lock expired before release",
			zap.String("productID", productID))
	}

	return nil
}

func (r *skuRepository) getSKUKey(productID string) string {
	return skuKeyPrefix + productID
}

func (r *skuRepository) getVariantKey(productID string) string {
	return skuKeyPrefix + productID + skuVariantKeySuffix
}

func (r *skuRepository) getLockKey(productID string) string {
	return skuLockPrefix + productID
}
