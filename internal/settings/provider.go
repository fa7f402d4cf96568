// Package settings turns stored generator options into a validated
// GenerationConfig and keeps the stored layout up to date.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/models"
	"github.com/aioutlet/sku-service/internal/repository"
	"go.uber.org/zap"
)

// Stored option names
const (
	OptionSimpleMode    = "simple_mode"
	OptionVariantMode   = "variant_mode"
	OptionSpaceHandling = "attribute_space_handling"
	OptionSeparator     = "separator"
	OptionForceSort     = "force_attribute_sort"
	OptionVersion       = "version"
	// OptionLegacySelect is the single mode option of pre-2.0.0 installs
	OptionLegacySelect = "select"
)

var generationOptions = []string{
	OptionSimpleMode,
	OptionVariantMode,
	OptionSpaceHandling,
	OptionSeparator,
	OptionForceSort,
}

// Provider supplies the generation config
type Provider interface {
	Load(ctx context.Context) (models.GenerationConfig, error)
	Save(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error)
}

// storeProvider implements Provider on top of the options store
type storeProvider struct {
	repo     repository.OptionsRepository
	defaults models.GenerationConfig
	logger   *zap.Logger
}

// NewProvider creates a provider reading options from repo. Missing or
// invalid options fall back to defaults.
func NewProvider(repo repository.OptionsRepository, defaults models.GenerationConfig, logger *zap.Logger) Provider {
	return &storeProvider{
		repo:     repo,
		defaults: defaults,
		logger:   logger,
	}
}

// Load reads and validates the stored options
func (p *storeProvider) Load(ctx context.Context) (models.GenerationConfig, error) {
	values, err := p.repo.GetOptions(ctx)
	if err != nil {
		return models.GenerationConfig{}, fmt.Errorf("failed to load sku settings: %w", err)
	}

	cfg := Resolve(values, p.defaults, p.logger)
	if err := cfg.Validate(); err != nil {
		return models.GenerationConfig{}, err
	}

	return cfg, nil
}

// Save validates cfg and stores it in canonical form
func (p *storeProvider) Save(ctx context.Context, cfg models.GenerationConfig) (models.GenerationConfig, error) {
	if err := cfg.Validate(); err != nil {
		return models.GenerationConfig{}, err
	}
	if cfg.Separator == "" {
		cfg.Separator = p.defaults.Separator
	}

	if err := p.repo.SetOptions(ctx, Encode(cfg)); err != nil {
		return models.GenerationConfig{}, fmt.Errorf("failed to save sku settings: %w", err)
	}

	p.logger.Info("SKU settings updated",
		zap.String("simpleMode", string(cfg.SimpleMode)),
		zap.String("variantMode", string(cfg.VariantMode)),
		zap.String("attributeSpaceHandling", string(cfg.AttributeSpaceHandling)),
		zap.String("separator", cfg.Separator),
		zap.Bool("forceAttributeSort", cfg.ForceAttributeSort))

	return cfg, nil
}

// Resolve builds a config from raw option values. Options that are missing
// or hold an unknown value keep the value from defaults.
func Resolve(values map[string]string, defaults models.GenerationConfig, logger *zap.Logger) models.GenerationConfig {
	cfg := defaults

	if raw, ok := values[OptionSimpleMode]; ok {
		if mode, ok := ParseSimpleMode(raw); ok {
			cfg.SimpleMode = mode
		} else {
			warnInvalid(logger, OptionSimpleMode, raw)
		}
	}

	if raw, ok := values[OptionVariantMode]; ok {
		if mode, ok := ParseVariantMode(raw); ok {
			cfg.VariantMode = mode
		} else {
			warnInvalid(logger, OptionVariantMode, raw)
		}
	}

	if raw, ok := values[OptionSpaceHandling]; ok {
		if handling, ok := ParseSpaceHandling(raw); ok {
			cfg.AttributeSpaceHandling = handling
		} else {
			warnInvalid(logger, OptionSpaceHandling, raw)
		}
	}

	if raw, ok := values[OptionSeparator]; ok && raw != "" {
		cfg.Separator = raw
	}

	if raw, ok := values[OptionForceSort]; ok {
		if force, ok := parseFlag(raw); ok {
			cfg.ForceAttributeSort = force
		} else {
			warnInvalid(logger, OptionForceSort, raw)
		}
	}

	return cfg
}

// Encode returns the canonical stored form of cfg
func Encode(cfg models.GenerationConfig) map[string]string {
	return map[string]string{
		OptionSimpleMode:    string(cfg.SimpleMode),
		OptionVariantMode:   string(cfg.VariantMode),
		OptionSpaceHandling: string(cfg.AttributeSpaceHandling),
		OptionSeparator:     cfg.Separator,
		OptionForceSort:     strconv.FormatBool(cfg.ForceAttributeSort),
	}
}

// DefaultsFromConfig builds the fallback config from environment settings.
// Unknown values there fall back to the built-in defaults.
func DefaultsFromConfig(cfg config.SKUConfig, logger *zap.Logger) models.GenerationConfig {
	return Resolve(map[string]string{
		OptionSimpleMode:    cfg.DefaultSimpleMode,
		OptionVariantMode:   cfg.DefaultVariantMode,
		OptionSpaceHandling: cfg.DefaultSpaceHandling,
		OptionSeparator:     cfg.DefaultSeparator,
		OptionForceSort:     strconv.FormatBool(cfg.DefaultForceSort),
	}, models.DefaultGenerationConfig(), logger)
}

// ParseSimpleMode accepts canonical names and the legacy never/slugs/ids values
func ParseSimpleMode(raw string) (models.SimpleMode, bool) {
	switch normalize(raw) {
	case "none", "never":
		return models.SimpleModeNone, true
	case "slug", "slugs":
		return models.SimpleModeSlug, true
	case "id", "ids":
		return models.SimpleModeID, true
	}
	return "", false
}

// ParseVariantMode accepts canonical names and the legacy never/slugs/ids values
func ParseVariantMode(raw string) (models.VariantMode, bool) {
	switch normalize(raw) {
	case "none", "never":
		return models.VariantModeNone, true
	case "attributes", "slugs":
		return models.VariantModeAttributes, true
	case "id", "ids":
		return models.VariantModeID, true
	}
	return "", false
}

// ParseSpaceHandling accepts the four space rules
func ParseSpaceHandling(raw string) (models.SpaceHandling, bool) {
	handling := models.SpaceHandling(normalize(raw))
	if !handling.IsValid() {
		return "", false
	}
	return handling, true
}

// parseFlag accepts strconv booleans and yes/no
func parseFlag(raw string) (bool, bool) {
	switch normalize(raw) {
	case "yes", "on":
		return true, true
	case "no", "off", "":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, false
	}
	return b, true
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func warnInvalid(logger *zap.Logger, option, value string) {
	logger.Warn("Ignoring invalid sku option, using default",
		zap.String("option", option),
		zap.String("value", value))
}
