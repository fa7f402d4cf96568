package settings

import (
	"context"
	"fmt"

	"github.com/aioutlet/sku-service/internal/models"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// fileProvider reads options from a settings file. Any format viper
// understands (yaml, json, toml, env) can be used.
type fileProvider struct {
	v        *viper.Viper
	path     string
	defaults models.GenerationConfig
	logger   *zap.Logger
}

// NewFileProvider creates a read-only provider backed by the file at path
func NewFileProvider(path string, defaults models.GenerationConfig, logger *zap.Logger) (Provider, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	return &fileProvider{
		v:        v,
		path:     path,
		defaults: defaults,
		logger:   logger,
	}, nil
}

// Load resolves the options found in the file
func (p *fileProvider) Load(_ context.Context) (models.GenerationConfig, error) {
	values := make(map[string]string, len(generationOptions))
	for _, option := range generationOptions {
		if p.v.IsSet(option) {
			values[option] = p.v.GetString(option)
		}
	}

	cfg := Resolve(values, p.defaults, p.logger)
	if err := cfg.Validate(); err != nil {
		return models.GenerationConfig{}, err
	}

	p.logger.Debug("Loaded sku settings from file", zap.String("path", p.path))
	return cfg, nil
}

// Save is not supported for file based settings
func (p *fileProvider) Save(_ context.Context, _ models.GenerationConfig) (models.GenerationConfig, error) {
	return models.GenerationConfig{}, models.ErrReadOnlySettings
}
