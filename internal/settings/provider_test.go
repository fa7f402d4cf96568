package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/mocks"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	defaults := models.DefaultGenerationConfig()

	tests := []struct {
		name     string
		values   map[string]string
		expected models.GenerationConfig
	}{
		{
			name:     "Nothing stored",
			values:   map[string]string{},
			expected: defaults,
		},
		{
			name: "Canonical values",
			values: map[string]string{
				OptionSimpleMode:    "id",
				OptionVariantMode:   "none",
				OptionSpaceHandling: "underscore",
				OptionSeparator:     "/",
				OptionForceSort:     "true",
			},
			expected: models.GenerationConfig{
				SimpleMode:             models.SimpleModeID,
				VariantMode:            models.VariantModeNone,
				AttributeSpaceHandling: models.SpaceHandlingUnderscore,
				Separator:              "/",
				ForceAttributeSort:     true,
			},
		},
		{
			name: "Legacy aliases",
			values: map[string]string{
				OptionSimpleMode:  "Never",
				OptionVariantMode: "slugs",
				OptionForceSort:   "yes",
			},
			expected: models.GenerationConfig{
				SimpleMode:             models.SimpleModeNone,
				VariantMode:            models.VariantModeAttributes,
				AttributeSpaceHandling: models.SpaceHandlingKeep,
				Separator:              "-",
				ForceAttributeSort:     true,
			},
		},
		{
			name: "Invalid values keep defaults",
			values: map[string]string{
				OptionSimpleMode:    "sku",
				OptionVariantMode:   "everything",
				OptionSpaceHandling: "tab",
				OptionForceSort:     "maybe",
			},
			expected: defaults,
		},
		{
			name:     "Empty separator keeps default",
			values:   map[string]string{OptionSeparator: ""},
			expected: defaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Resolve(tt.values, defaults, zap.NewNop()))
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := models.GenerationConfig{
		SimpleMode:             models.SimpleModeID,
		VariantMode:            models.VariantModeAttributes,
		AttributeSpaceHandling: models.SpaceHandlingRemove,
		Separator:              "_",
		ForceAttributeSort:     true,
	}

	assert.Equal(t, cfg, Resolve(Encode(cfg), models.DefaultGenerationConfig(), zap.NewNop()))
}

func TestDefaultsFromConfig(t *testing.T) {
	cfg := DefaultsFromConfig(config.SKUConfig{
		DefaultSimpleMode:    "ids",
		DefaultVariantMode:   "bogus",
		DefaultSpaceHandling: "dash",
		DefaultSeparator:     "",
		DefaultForceSort:     true,
	}, zap.NewNop())

	assert.Equal(t, models.SimpleModeID, cfg.SimpleMode)
	assert.Equal(t, models.VariantModeAttributes, cfg.VariantMode)
	assert.Equal(t, models.SpaceHandlingDash, cfg.AttributeSpaceHandling)
	assert.Equal(t, models.DefaultSeparator, cfg.Separator)
	assert.True(t, cfg.ForceAttributeSort)
}

func TestStoreProvider_Load(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(map[string]string{
		OptionSimpleMode:  "slug",
		OptionVariantMode: "id",
	}, nil)

	provider := NewProvider(repo, models.DefaultGenerationConfig(), zap.NewNop())
	cfg, err := provider.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SimpleModeSlug, cfg.SimpleMode)
	assert.Equal(t, models.VariantModeID, cfg.VariantMode)
	repo.AssertExpectations(t)
}

func TestStoreProvider_LoadError(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	repo.On("GetOptions", mock.Anything).Return(nil, errors.New("connection refused"))

	provider := NewProvider(repo, models.DefaultGenerationConfig(), zap.NewNop())
	_, err := provider.Load(context.Background())

	assert.Error(t, err)
}

func TestStoreProvider_Save(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	cfg := models.GenerationConfig{
		SimpleMode:             models.SimpleModeNone,
		VariantMode:            models.VariantModeAttributes,
		AttributeSpaceHandling: models.SpaceHandlingUnderscore,
		Separator:              "",
	}
	expected := cfg
	expected.Separator = models.DefaultSeparator
	repo.On("SetOptions", mock.Anything, Encode(expected)).Return(nil)

	provider := NewProvider(repo, models.DefaultGenerationConfig(), zap.NewNop())
	saved, err := provider.Save(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, expected, saved)
	repo.AssertExpectations(t)
}

func TestStoreProvider_SaveRejectsInvalid(t *testing.T) {
	repo := &mocks.MockOptionsRepository{}
	cfg := models.DefaultGenerationConfig()
	cfg.VariantMode = "slugs"

	provider := NewProvider(repo, models.DefaultGenerationConfig(), zap.NewNop())
	_, err := provider.Save(context.Background(), cfg)

	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
	repo.AssertNotCalled(t, "SetOptions", mock.Anything, mock.Anything)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sku.yaml")
	content := "simple_mode: id\nvariant_mode: attributes\nattribute_space_handling: dash\nforce_attribute_sort: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	provider, err := NewFileProvider(path, models.DefaultGenerationConfig(), zap.NewNop())
	require.NoError(t, err)

	cfg, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.GenerationConfig{
		SimpleMode:             models.SimpleModeID,
		VariantMode:            models.VariantModeAttributes,
		AttributeSpaceHandling: models.SpaceHandlingDash,
		Separator:              models.DefaultSeparator,
		ForceAttributeSort:     true,
	}, cfg)

	_, err = provider.Save(context.Background(), cfg)
	assert.ErrorIs(t, err, models.ErrReadOnlySettings)
}

func TestFileProvider_MissingFile(t *testing.T) {
	_, err := NewFileProvider(filepath.Join(t.TempDir(), "missing.yaml"), models.DefaultGenerationConfig(), zap.NewNop())
	assert.Error(t, err)
}
