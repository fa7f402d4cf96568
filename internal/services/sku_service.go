package services

import (
	"context"
	"fmt"
	"time"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/generator"
	"github.com/aioutlet/sku-service/internal/middleware"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/repository"
	"github.com/aioutlet/sku-service/internal/settings"
	"github.com/aioutlet/sku-service/pkg/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultLockTTL = 30 * time.Second

// SKUService interface defines sku service operations
type SKUService interface {
	Preview(ctx context.Context, product models.Product, override *models.GenerationConfig) (*models.GenerationResult, error)
	SaveProduct(ctx context.Context, product models.Product) (*models.GenerationResult, error)
	GenerateForProduct(ctx context.Context, productID string) (*models.GenerationResult, error)
	BulkGenerate(ctx context.Context, request models.BulkGenerateRequest) (*models.BulkGenerateResult, error)
	GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error)
	DeleteSKUs(ctx context.Context, productID string) error
	GetSettings(ctx context.Context) (models.GenerationConfig, error)
	UpdateSettings(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error)
}

// skuService implements SKUService interface
type skuService struct {
	products repository.ProductRepository
	skus     repository.SKURepository
	settings settings.Provider
	hooks    generator.Hooks
	config   *config.Config
	logger   *zap.Logger
}

// NewSKUService creates a new sku service
func NewSKUService(
	products repository.ProductRepository,
	skus repository.SKURepository,
	provider settings.Provider,
	hooks generator.Hooks,
	cfg *config.Config,
	logger *zap.Logger,
) SKUService {
	return &skuService{
		products: products,
		skus:     skus,
		settings: provider,
		hooks:    hooks,
		config:   cfg,
		logger:   logger,
	}
}

// Preview runs the generator without persisting anything
func (s *skuService) Preview(ctx context.Context, product models.Product, override *models.GenerationConfig) (*models.GenerationResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "SKUService.Preview",
		trace.WithAttributes(attribute.String("product.id", product.ID.String())))
	defer span.End()

	cfg, err := s.resolveConfig(ctx, override)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	result, err := generator.GenerateSKUs(product, cfg, s.hooks)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	s.logger.Debug("Previewed skus",
		zap.String("productID", product.ID.String()),
		zap.String("correlationID", middleware.CorrelationIDFromContext(ctx)),
		zap.Int("variantSKUs", len(result.VariantSKUs)))

	return result, nil
}

// SaveProduct stores a product snapshot and regenerates its skus
func (s *skuService) SaveProduct(ctx context.Context, product models.Product) (*models.GenerationResult, error) {
	productID := product.ID.String()
	ctx, span := tracing.GetTracer().Start(ctx, "SKUService.SaveProduct",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	var result *models.GenerationResult
	err := s.withProductLock(ctx, productID, func() error {
		cfg, err := s.settings.Load(ctx)
		if err != nil {
			return err
		}

		// generate first so an unusable snapshot is never stored
		result, err = generator.GenerateSKUs(product, cfg, s.hooks)
		if err != nil {
			return err
		}

		return s.persist(ctx, result, &product, cfg)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	return result, nil
}

// GenerateForProduct regenerates and persists the skus of a stored product
func (s *skuService) GenerateForProduct(ctx context.Context, productID string) (*models.GenerationResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "SKUService.GenerateForProduct",
		trace.WithAttributes(attribute.String("product.id", productID)))
	defer span.End()

	var result *models.GenerationResult
	err := s.withProductLock(ctx, productID, func() error {
		product, err := s.products.GetProduct(ctx, productID)
		if err != nil {
			return err
		}

		cfg, err := s.settings.Load(ctx)
		if err != nil {
			return err
		}

		result, err = generator.GenerateSKUs(*product, cfg, s.hooks)
		if err != nil {
			return err
		}

		return s.persist(ctx, result, nil, cfg)
	})
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	return result, nil
}

// BulkGenerate regenerates several products concurrently. Failures are
// reported per product and do not stop the run.
func (s *skuService) BulkGenerate(ctx context.Context, request models.BulkGenerateRequest) (*models.BulkGenerateResult, error) {
	ctx, span := tracing.GetTracer().Start(ctx, "SKUService.BulkGenerate")
	defer span.End()

	productIDs := request.ProductIDs
	if request.All {
		ids, err := s.products.ListProductIDs(ctx)
		if err != nil {
			tracing.RecordError(span, err)
			return nil, err
		}
		productIDs = ids
	}
	productIDs = uniqueIDs(productIDs)
	span.SetAttributes(attribute.Int("products.count", len(productIDs)))

	items := make([]models.BulkItemResult, len(productIDs))

	var g errgroup.Group
	g.SetLimit(s.bulkConcurrency())
	for i, productID := range productIDs {
		i, productID := i, productID
		g.Go(func() error {
			item := models.BulkItemResult{ProductID: models.ID(productID)}
			if err := ctx.Err(); err != nil {
				item.Error = err.Error()
				items[i] = item
				return nil
			}

			result, err := s.GenerateForProduct(ctx, productID)
			if err != nil {
				s.logger.Warn("Bulk sku generation failed for product",
					zap.String("productID", productID),
					zap.Error(err))
				item.Error = err.Error()
			} else {
				item.Result = result
			}
			items[i] = item
			return nil
		})
	}
	_ = g.Wait()

	summary := &models.BulkGenerateResult{
		Total: len(items),
		Items: items,
	}
	for _, item := range items {
		if item.Error != "" {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}

	s.logger.Info("Bulk sku generation finished",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.String("correlationID", middleware.CorrelationIDFromContext(ctx)))

	return summary, nil
}

// GetSKUs returns what is stored for a product
func (s *skuService) GetSKUs(ctx context.Context, productID string) (*models.StoredSKUs, error) {
	s.logger.Debug("Getting skus", zap.String("productID", productID))

	return s.skus.GetSKUs(ctx, productID)
}

// DeleteSKUs removes the stored skus of a known product
func (s *skuService) DeleteSKUs(ctx context.Context, productID string) error {
	return s.withProductLock(ctx, productID, func() error {
		exists, err := s.products.ProductExists(ctx, productID)
		if err != nil {
			return err
		}
		if !exists {
			return models.ErrProductNotFound
		}

		if err := s.skus.DeleteSKUs(ctx, productID); err != nil {
			return err
		}
		s.logger.Info("Deleted skus", zap.String("productID", productID))
		return nil
	})
}

// GetSettings returns the current generation config
func (s *skuService) GetSettings(ctx context.Context) (models.GenerationConfig, error) {
	return s.settings.Load(ctx)
}

// UpdateSettings validates and stores a new generation config
func (s *skuService) UpdateSettings(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error) {
	return s.settings.Save(ctx, cfg)
}

func (s *skuService) resolveConfig(ctx context.Context, override *models.GenerationConfig) (models.GenerationConfig, error) {
	if override == nil {
		return s.settings.Load(ctx)
	}

	cfg := *override
	if cfg.Separator == "" {
		cfg.Separator = models.DefaultSeparator
	}
	return cfg, nil
}

// persist writes only the parts the config generates. A non-nil snapshot is
// stored in the same write.
func (s *skuService) persist(ctx context.Context, result *models.GenerationResult, snapshot *models.Product, cfg models.GenerationConfig) error {
	if err := s.skus.SaveSKUs(ctx, result, snapshot, cfg.WritesProductSKU(), cfg.WritesVariantSKUs()); err != nil {
		return fmt.Errorf("failed to persist skus: %w", err)
	}

	s.logger.Info("Generated skus",
		zap.String("productID", result.ProductID.String()),
		zap.String("productSKU", result.ProductSKU),
		zap.Int("variantSKUs", len(result.VariantSKUs)),
		zap.String("correlationID", middleware.CorrelationIDFromContext(ctx)))

	return nil
}

func (s *skuService) withProductLock(ctx context.Context, productID string, fn func() error) error {
	token, lockAcquired, err := s.skus.AcquireLock(ctx, productID, s.lockTTL())
	if err != nil {
		return fmt.Errorf("failed to acquire sku lock: %w", err)
	}
	if !lockAcquired {
		return models.ErrGenerationInProgress
	}
	defer func() {
		if err := s.skus.ReleaseLock(context.WithoutCancel(ctx), productID, token); err != nil {
			s.logger.Warn("Failed to release sku lock",
				zap.String("productID", productID),
				zap.Error(err))
		}
	}()

	return fn()
}

// lockTTL never returns a non-positive ttl, which Redis would treat as no expiry
func (s *skuService) lockTTL() time.Duration {
	if s.config.SKU.LockTTL > 0 {
		return s.config.SKU.LockTTL
	}
	return defaultLockTTL
}

func (s *skuService) bulkConcurrency() int {
	if s.config.SKU.BulkConcurrency > 0 {
		return s.config.SKU.BulkConcurrency
	}
	return 1
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
