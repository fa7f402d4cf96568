// Package generator computes product and variant SKUs from catalog
// snapshots. Every function is pure: nothing is read from or written to a
// store, and equal inputs always give equal outputs.
package generator

import (
	"sort"
	"strings"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/pkg/utils"
)

// ResolveProductSKU computes the SKU of a simple product or of the parent of
// a variable product.
func ResolveProductSKU(product models.Product, cfg models.GenerationConfig, hooks Hooks) (string, error) {
	var sku string

	switch cfg.SimpleMode {
	case models.SimpleModeNone:
		sku = product.ExistingSKU
	case models.SimpleModeSlug:
		sku = utils.DecodeSlug(product.Slug)
	case models.SimpleModeID:
		sku = product.ID.String()
	default:
		return "", &models.ConfigurationError{Setting: models.SettingSimpleMode, Value: string(cfg.SimpleMode)}
	}

	return hooks.productSKU(sku, product), nil
}

// ResolveVariantFragment computes the variant specific part of a variant SKU.
// It returns ErrVariantGenerationDisabled when variant generation is off.
func ResolveVariantFragment(variant models.Variant, cfg models.GenerationConfig, hooks Hooks) (string, error) {
	var fragment string

	switch cfg.VariantMode {
	case models.VariantModeNone:
		return "", models.ErrVariantGenerationDisabled
	case models.VariantModeID:
		fragment = variant.ID.String()
	case models.VariantModeAttributes:
		f, err := attributeFragment(variant.Attributes, cfg)
		if err != nil {
			return "", err
		}
		fragment = f
	default:
		return "", &models.ConfigurationError{Setting: models.SettingVariantMode, Value: string(cfg.VariantMode)}
	}

	return hooks.variantFragment(fragment, variant), nil
}

// GenerateSKUs computes the product SKU and, for variable products, one SKU
// per variant keyed by variant id. Later variants overwrite earlier ones
// that share an id.
func GenerateSKUs(product models.Product, cfg models.GenerationConfig, hooks Hooks) (*models.GenerationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	productSKU, err := ResolveProductSKU(product, cfg, hooks)
	if err != nil {
		return nil, err
	}

	result := &models.GenerationResult{
		ProductID:   product.ID,
		ProductSKU:  productSKU,
		VariantSKUs: make(map[models.ID]string),
	}

	if !product.IsVariable() || cfg.VariantMode == models.VariantModeNone {
		return result, nil
	}

	if product.Variants == nil {
		return nil, &models.DataError{ProductID: product.ID, Reason: "variable product has no variants collection"}
	}

	for _, variant := range product.Variants {
		fragment, err := ResolveVariantFragment(variant, cfg, hooks)
		if err != nil {
			return nil, err
		}

		sku := utils.JoinSKUParts(productSKU, cfg.Separator, fragment)
		result.VariantSKUs[variant.ID] = hooks.variantSKU(sku, productSKU, fragment)
	}

	return result, nil
}

func attributeFragment(attrs models.Attributes, cfg models.GenerationConfig) (string, error) {
	replacement, keep, err := spaceReplacement(cfg.AttributeSpaceHandling)
	if err != nil {
		return "", err
	}

	ordered := make(models.Attributes, len(attrs))
	copy(ordered, attrs)
	if cfg.ForceAttributeSort {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Name < ordered[j].Name
		})
	}

	values := make([]string, 0, len(ordered))
	for _, attr := range ordered {
		value := attr.Value
		if !keep {
			value = utils.ReplaceSpaces(value, replacement)
		}
		values = append(values, value)
	}

	// prefix cleanup runs on the joined string, not per value
	return utils.StripAttributePrefix(strings.Join(values, cfg.Separator)), nil
}

func spaceReplacement(handling models.SpaceHandling) (string, bool, error) {
	switch handling {
	case models.SpaceHandlingKeep:
		return "", true, nil
	case models.SpaceHandlingUnderscore:
		return "_", false, nil
	case models.SpaceHandlingDash:
		return "-", false, nil
	case models.SpaceHandlingRemove:
		return "", false, nil
	}
	return "", false, &models.ConfigurationError{Setting: models.SettingAttributeSpaceHandling, Value: string(handling)}
}
