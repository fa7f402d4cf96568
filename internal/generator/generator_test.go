package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveProductSKU(t *testing.T) {
	tests := []struct {
		name     string
		product  models.Product
		mode     models.SimpleMode
		expected string
	}{
		{
			name:     "None mode keeps existing sku",
			product:  models.Product{ID: "1", Slug: "shirt", ExistingSKU: "LEGACY-1"},
			mode:     models.SimpleModeNone,
			expected: "LEGACY-1",
		},
		{
			name:     "Slug mode decodes percent escapes",
			product:  models.Product{ID: "1", Slug: "blue%20shirt"},
			mode:     models.SimpleModeSlug,
			expected: "blue shirt",
		},
		{
			name:     "Slug mode preserves case and punctuation",
			product:  models.Product{ID: "1", Slug: "Caf%C3%A9-Mug_XL"},
			mode:     models.SimpleModeSlug,
			expected: "Café-Mug_XL",
		},
		{
			name:     "Slug mode keeps malformed escapes",
			product:  models.Product{ID: "1", Slug: "100%-cotton"},
			mode:     models.SimpleModeSlug,
			expected: "100%-cotton",
		},
		{
			name:     "Slug mode with empty slug",
			product:  models.Product{ID: "1", Slug: ""},
			mode:     models.SimpleModeSlug,
			expected: "",
		},
		{
			name:     "ID mode uses product id",
			product:  models.Product{ID: "42", Slug: "shirt"},
			mode:     models.SimpleModeID,
			expected: "42",
		},
		{
			name:     "Unknown product type treated as simple",
			product:  models.Product{ID: "7", Slug: "bundle", Type: "grouped"},
			mode:     models.SimpleModeSlug,
			expected: "bundle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutils.CreateTestGenerationConfig()
			cfg.SimpleMode = tt.mode

			sku, err := ResolveProductSKU(tt.product, cfg, Hooks{})

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, sku)
		})
	}
}

func TestResolveProductSKU_InvalidMode(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.SimpleMode = "bogus"

	sku, err := ResolveProductSKU(models.Product{ID: "1"}, cfg, Hooks{})

	var cfgErr *models.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, models.SettingSimpleMode, cfgErr.Setting)
	assert.Empty(t, sku)
}

func TestResolveProductSKU_HookAppliedLast(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.SimpleMode = models.SimpleModeSlug

	var seenValue string
	var seenProduct models.Product
	hooks := Hooks{
		ProductSKU: func(sku string, product models.Product) string {
			seenValue = sku
			seenProduct = product
			return "PRE-" + sku
		},
	}
	product := models.Product{ID: "9", Slug: "blue%20shirt"}

	sku, err := ResolveProductSKU(product, cfg, hooks)

	require.NoError(t, err)
	assert.Equal(t, "PRE-blue shirt", sku)
	assert.Equal(t, "blue shirt", seenValue)
	assert.Equal(t, product.ID, seenProduct.ID)
}

func TestResolveVariantFragment(t *testing.T) {
	tests := []struct {
		name      string
		variant   models.Variant
		mode      models.VariantMode
		spaces    models.SpaceHandling
		separator string
		forceSort bool
		expected  string
	}{
		{
			name:      "Attributes sorted with underscores",
			variant:   testutils.CreateTestVariant("1", "size", "M", "color", "Deep Blue"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingUnderscore,
			separator: "-",
			forceSort: true,
			expected:  "Deep_Blue-M",
		},
		{
			name:      "Attributes keep supplied order without sorting",
			variant:   testutils.CreateTestVariant("1", "size", "M", "color", "Red"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			expected:  "M-Red",
		},
		{
			name:      "Dash replaces spaces",
			variant:   testutils.CreateTestVariant("1", "color", "Deep Sea Blue"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingDash,
			separator: "/",
			expected:  "Deep-Sea-Blue",
		},
		{
			name:      "Remove deletes spaces",
			variant:   testutils.CreateTestVariant("1", "color", "Deep Blue", "size", "X L"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingRemove,
			separator: ".",
			expected:  "DeepBlue.XL",
		},
		{
			name:      "Keep leaves spaces",
			variant:   testutils.CreateTestVariant("1", "color", "Deep Blue"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			expected:  "Deep Blue",
		},
		{
			name:      "Attribute names are not rewritten or emitted",
			variant:   testutils.CreateTestVariant("1", "pa color", "Red"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingUnderscore,
			separator: "-",
			expected:  "Red",
		},
		{
			name:      "Prefix stripped from joined string",
			variant:   testutils.CreateTestVariant("1", "a", "attribute_pa_color", "b", "attribute_size"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			expected:  "pa_color-size",
		},
		{
			name:      "Prefix formed across a join is stripped",
			variant:   testutils.CreateTestVariant("1", "a", "attribute", "b", "red"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "_",
			expected:  "red",
		},
		{
			name:      "Empty attributes give empty fragment",
			variant:   models.Variant{ID: "1", Attributes: models.Attributes{}},
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			expected:  "",
		},
		{
			name:      "Empty values degrade to empty contributions",
			variant:   testutils.CreateTestVariant("1", "color", "", "size", "S"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			expected:  "-S",
		},
		{
			name:      "ID mode ignores attributes",
			variant:   testutils.CreateTestVariant("17", "color", "Red"),
			mode:      models.VariantModeID,
			spaces:    models.SpaceHandlingUnderscore,
			separator: "-",
			expected:  "17",
		},
		{
			name:      "Sorting is byte-wise",
			variant:   testutils.CreateTestVariant("1", "b", "lower", "B", "upper", "a", "first"),
			mode:      models.VariantModeAttributes,
			spaces:    models.SpaceHandlingKeep,
			separator: "-",
			forceSort: true,
			expected:  "upper-first-lower",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := models.GenerationConfig{
				SimpleMode:             models.SimpleModeSlug,
				VariantMode:            tt.mode,
				AttributeSpaceHandling: tt.spaces,
				Separator:              tt.separator,
				ForceAttributeSort:     tt.forceSort,
			}

			fragment, err := ResolveVariantFragment(tt.variant, cfg, Hooks{})

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, fragment)
		})
	}
}

func TestResolveVariantFragment_DoesNotReorderInput(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.ForceAttributeSort = true
	variant := testutils.CreateTestVariant("1", "size", "M", "color", "Red")

	_, err := ResolveVariantFragment(variant, cfg, Hooks{})

	require.NoError(t, err)
	assert.Equal(t, "size", variant.Attributes[0].Name)
	assert.Equal(t, "color", variant.Attributes[1].Name)
}

func TestResolveVariantFragment_ModeNone(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.VariantMode = models.VariantModeNone

	_, err := ResolveVariantFragment(testutils.CreateTestVariant("1", "color", "Red"), cfg, Hooks{})

	assert.ErrorIs(t, err, models.ErrVariantGenerationDisabled)
}

func TestResolveVariantFragment_InvalidSpaceHandling(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.AttributeSpaceHandling = "tabs"

	_, err := ResolveVariantFragment(testutils.CreateTestVariant("1", "color", "Red"), cfg, Hooks{})

	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func TestGenerateSKUs(t *testing.T) {
	t.Run("Composes attribute fragments with product sku", func(t *testing.T) {
		cfg := models.GenerationConfig{
			SimpleMode:             models.SimpleModeSlug,
			VariantMode:            models.VariantModeAttributes,
			AttributeSpaceHandling: models.SpaceHandlingUnderscore,
			Separator:              "-",
			ForceAttributeSort:     true,
		}
		product := testutils.CreateTestVariableProduct("10", "shirt",
			testutils.CreateTestVariant("11", "size", "M", "color", "Deep Blue"),
			testutils.CreateTestVariant("12", "size", "L", "color", "Red"),
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, models.ID("10"), result.ProductID)
		assert.Equal(t, "shirt", result.ProductSKU)
		assert.Equal(t, map[models.ID]string{
			"11": "shirt-Deep_Blue-M",
			"12": "shirt-Red-L",
		}, result.VariantSKUs)
	})

	t.Run("ID modes", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		cfg.SimpleMode = models.SimpleModeID
		cfg.VariantMode = models.VariantModeID
		product := testutils.CreateTestVariableProduct("42", "shirt",
			testutils.CreateTestVariant("17", "color", "Red"),
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, "42", result.ProductSKU)
		assert.Equal(t, "42-17", result.VariantSKUs["17"])
	})

	t.Run("Empty product sku keeps leading separator", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		cfg.VariantMode = models.VariantModeID
		product := testutils.CreateTestVariableProduct("1", "",
			testutils.CreateTestVariant("17", "color", "Red"),
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, "", result.ProductSKU)
		assert.Equal(t, "-17", result.VariantSKUs["17"])
	})

	t.Run("Empty attributes end with separator", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		product := testutils.CreateTestVariableProduct("1", "shirt",
			models.Variant{ID: "2", Attributes: models.Attributes{}},
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, "shirt-", result.VariantSKUs["2"])
	})

	t.Run("Duplicate variant ids keep the last one", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		product := testutils.CreateTestVariableProduct("1", "shirt",
			testutils.CreateTestVariant("5", "color", "Red"),
			testutils.CreateTestVariant("5", "color", "Blue"),
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Len(t, result.VariantSKUs, 1)
		assert.Equal(t, "shirt-Blue", result.VariantSKUs["5"])
	})

	t.Run("Separator is shared by attributes and composition", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		cfg.Separator = "/"
		product := testutils.CreateTestVariableProduct("1", "shirt",
			testutils.CreateTestVariant("2", "color", "Red", "size", "S"),
		)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, "shirt/Red/S", result.VariantSKUs["2"])
	})

	t.Run("Unpublished variants are generated", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		hidden := testutils.CreateTestVariant("3", "color", "Green")
		hidden.Status = "private"
		product := testutils.CreateTestVariableProduct("1", "shirt", hidden)

		result, err := GenerateSKUs(product, cfg, Hooks{})

		require.NoError(t, err)
		assert.Equal(t, "shirt-Green", result.VariantSKUs["3"])
	})
}

func TestGenerateSKUs_SimpleModeNonePassthrough(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.SimpleMode = models.SimpleModeNone
	product := testutils.CreateTestVariableProduct("1", "shirt",
		testutils.CreateTestVariant("2", "color", "Red"),
	)
	product.ExistingSKU = "OLD-1"

	result, err := GenerateSKUs(product, cfg, Hooks{})

	require.NoError(t, err)
	assert.Equal(t, "OLD-1", result.ProductSKU)
	assert.Equal(t, "OLD-1-Red", result.VariantSKUs["2"])
}

func TestGenerateSKUs_NoVariantSKUs(t *testing.T) {
	tests := []struct {
		name    string
		product models.Product
		mode    models.VariantMode
	}{
		{
			name:    "Variant mode none",
			product: testutils.CreateTestVariableProduct("1", "shirt", testutils.CreateTestVariant("2", "color", "Red")),
			mode:    models.VariantModeNone,
		},
		{
			name:    "Variant mode none with absent variants",
			product: models.Product{ID: "1", Slug: "shirt", Type: models.ProductTypeVariable},
			mode:    models.VariantModeNone,
		},
		{
			name: "Simple product ignores variants",
			product: models.Product{
				ID:       "1",
				Slug:     "shirt",
				Type:     models.ProductTypeSimple,
				Variants: []models.Variant{testutils.CreateTestVariant("2", "color", "Red")},
			},
			mode: models.VariantModeAttributes,
		},
		{
			name:    "External product",
			product: models.Product{ID: "1", Slug: "voucher", Type: models.ProductTypeExternal},
			mode:    models.VariantModeID,
		},
		{
			name:    "Variable product with empty variants",
			product: testutils.CreateTestVariableProduct("1", "shirt"),
			mode:    models.VariantModeAttributes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testutils.CreateTestGenerationConfig()
			cfg.VariantMode = tt.mode

			result, err := GenerateSKUs(tt.product, cfg, Hooks{})

			require.NoError(t, err)
			assert.NotNil(t, result.VariantSKUs)
			assert.Empty(t, result.VariantSKUs)
		})
	}
}

func TestGenerateSKUs_Errors(t *testing.T) {
	t.Run("Invalid simple mode", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		cfg.SimpleMode = "bogus"

		result, err := GenerateSKUs(testutils.CreateTestSimpleProduct("1", "shirt"), cfg, Hooks{})

		assert.Nil(t, result)
		var cfgErr *models.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "bogus", cfgErr.Value)
	})

	t.Run("Invalid variant mode on simple product", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		cfg.VariantMode = "everything"

		result, err := GenerateSKUs(testutils.CreateTestSimpleProduct("1", "shirt"), cfg, Hooks{})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
	})

	t.Run("Variable product without variants", func(t *testing.T) {
		cfg := testutils.CreateTestGenerationConfig()
		product := models.Product{ID: "8", Slug: "shirt", Type: models.ProductTypeVariable}

		result, err := GenerateSKUs(product, cfg, Hooks{})

		assert.Nil(t, result)
		var dataErr *models.DataError
		require.ErrorAs(t, err, &dataErr)
		assert.Equal(t, models.ID("8"), dataErr.ProductID)
		assert.True(t, errors.Is(err, models.ErrMissingVariants))
	})
}

func TestGenerateSKUs_HookOrder(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	product := testutils.CreateTestVariableProduct("1", "shirt",
		testutils.CreateTestVariant("2", "color", "Red"),
	)

	var calls []string
	hooks := Hooks{
		ProductSKU: func(sku string, _ models.Product) string {
			calls = append(calls, "product")
			return sku + "X"
		},
		VariantFragment: func(fragment string, variant models.Variant) string {
			calls = append(calls, "fragment")
			return fragment + variant.ID.String()
		},
		VariantSKU: func(sku, productSKU, fragment string) string {
			calls = append(calls, "variant")
			assert.Equal(t, "shirtX", productSKU)
			assert.Equal(t, "Red2", fragment)
			return sku + "!"
		},
	}

	result, err := GenerateSKUs(product, cfg, hooks)

	require.NoError(t, err)
	assert.Equal(t, []string{"product", "fragment", "variant"}, calls)
	assert.Equal(t, "shirtX", result.ProductSKU)
	assert.Equal(t, "shirtX-Red2!", result.VariantSKUs["2"])
}

func TestGenerateSKUs_Deterministic(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	cfg.AttributeSpaceHandling = models.SpaceHandlingUnderscore
	product := testutils.CreateTestVariableProduct("1", "blue%20shirt",
		testutils.CreateTestVariant("2", "size", "M", "color", "Deep Blue"),
		testutils.CreateTestVariant("3", "size", "L", "color", "Light Grey"),
	)

	first, err := GenerateSKUs(product, cfg, Hooks{})
	require.NoError(t, err)
	second, err := GenerateSKUs(product, cfg, Hooks{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "blue shirt-M-Deep_Blue", first.VariantSKUs["2"])
}

func TestUppercaseHooks(t *testing.T) {
	cfg := testutils.CreateTestGenerationConfig()
	product := testutils.CreateTestVariableProduct("1", "shirt",
		testutils.CreateTestVariant("2", "color", "red"),
	)

	result, err := GenerateSKUs(product, cfg, UppercaseHooks())

	require.NoError(t, err)
	assert.Equal(t, "SHIRT", result.ProductSKU)
	assert.Equal(t, "SHIRT-RED", result.VariantSKUs["2"])
	assert.Equal(t, strings.ToUpper(result.VariantSKUs["2"]), result.VariantSKUs["2"])
}
