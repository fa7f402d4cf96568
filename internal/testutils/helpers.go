package testutils

import (
	"time"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/models"
)

// CreateTestConfig creates a test configuration
func CreateTestConfig() *config.Config {
	return &config.Config{
		Name:        "sku-service",
		Version:     "test",
		Environment: "test",
		Server: config.ServerConfig{
			Port:         "1012",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Redis: config.RedisConfig{
			Address:  "localhost:6379",
			PoolSize: 1,
		},
		JWT: config.JWTConfig{
			SecretKey: "test-secret-key",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		SKU: config.SKUConfig{
			DefaultSimpleMode:    "slug",
			DefaultVariantMode:   "attributes",
			DefaultSpaceHandling: "keep",
			DefaultSeparator:     "-",
			LockTTL:              30 * time.Second,
			BulkConcurrency:      4,
			SettingsKey:          "sku_generator:options",
		},
		Log: config.LogConfig{
			Environment: "test",
		},
	}
}

// CreateTestGenerationConfig returns the default generation settings
func CreateTestGenerationConfig() models.GenerationConfig {
	return models.DefaultGenerationConfig()
}

// CreateTestVariant creates a variant from alternating attribute names and values
func CreateTestVariant(id string, nameValues ...string) models.Variant {
	attrs := make(models.Attributes, 0, len(nameValues)/2)
	for i := 0; i+1 < len(nameValues); i += 2 {
		attrs = append(attrs, models.Attribute{Name: nameValues[i], Value: nameValues[i+1]})
	}
	return models.Variant{
		ID:         models.ID(id),
		Attributes: attrs,
		Status:     "publish",
	}
}

// CreateTestVariableProduct creates a variable product. The variants
// collection is always present, even when no variants are given.
func CreateTestVariableProduct(id, slug string, variants ...models.Variant) models.Product {
	list := make([]models.Variant, 0, len(variants))
	list = append(list, variants...)
	return models.Product{
		ID:       models.ID(id),
		Slug:     slug,
		Type:     models.ProductTypeVariable,
		Variants: list,
	}
}

// CreateTestSimpleProduct creates a simple product
func CreateTestSimpleProduct(id, slug string) models.Product {
	return models.Product{
		ID:          models.ID(id),
		Slug:        slug,
		ExistingSKU: "SKU-" + id,
		Type:        models.ProductTypeSimple,
	}
}
