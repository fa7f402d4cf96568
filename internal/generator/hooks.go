package generator

import (
	"strings"

	"github.com/aioutlet/sku-service/internal/models"
)

// Hooks are optional overrides applied after mode-based resolution, in the
// order ProductSKU, VariantFragment, VariantSKU. A nil func leaves the value
// unchanged.
type Hooks struct {
	// ProductSKU receives the resolved simple or parent SKU
	ProductSKU func(sku string, product models.Product) string
	// VariantFragment receives the resolved variant fragment
	VariantFragment func(fragment string, variant models.Variant) string
	// VariantSKU receives the composed variant SKU and the parts it was built from
	VariantSKU func(sku string, productSKU string, fragment string) string
}

func (h Hooks) productSKU(sku string, product models.Product) string {
	if h.ProductSKU == nil {
		return sku
	}
	return h.ProductSKU(sku, product)
}

func (h Hooks) variantFragment(fragment string, variant models.Variant) string {
	if h.VariantFragment == nil {
		return fragment
	}
	return h.VariantFragment(fragment, variant)
}

func (h Hooks) variantSKU(sku, productSKU, fragment string) string {
	if h.VariantSKU == nil {
		return sku
	}
	return h.VariantSKU(sku, productSKU, fragment)
}

// UppercaseHooks upper-cases product and variant SKUs
func UppercaseHooks() Hooks {
	return Hooks{
		ProductSKU: func(sku string, _ models.Product) string {
			return strings.ToUpper(sku)
		},
		VariantSKU: func(sku, _, _ string) string {
			return strings.ToUpper(sku)
		},
	}
}
