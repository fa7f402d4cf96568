package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OptionsRepository stores raw generator options as a Redis hash
type OptionsRepository interface {
	GetOptions(ctx context.Context) (map[string]string, error)
	SetOptions(ctx context.Context, values map[string]string) error
	DeleteOptions(ctx context.Context, fields ...string) error
}

// optionsRepository implements OptionsRepository interface
type optionsRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewOptionsRepository creates a new options repository backed by the hash at key
func NewOptionsRepository(client *redis.Client, key string, logger *zap.Logger) OptionsRepository {
	return &optionsRepository{
		client: client,
		key:    key,
		logger: logger,
	}
}

// GetOptions returns every stored option. A missing hash gives an empty map.
func (r *optionsRepository) GetOptions(ctx context.Context) (map[string]string, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		r.logger.Error("Failed to get options from Redis",
			zap.String("key", r.key),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get options: %w", err)
	}

	return values, nil
}

// SetOptions writes the given options, leaving others untouched
func (r *optionsRepository) SetOptions(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	fields := make(map[string]interface{}, len(values))
	for field, value := range values {
		fields[field] = value
	}

	if err := r.client.HSet(ctx, r.key, fields).Err(); err != nil {
		r.logger.Error("Failed to save options to Redis",
			zap.String("key", r.key),
			zap.Error(err))
		return fmt.Errorf("failed to save options: %w", err)
	}

	return nil
}

// DeleteOptions removes the given options
func (r *optionsRepository) DeleteOptions(ctx context.Context, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	if err := r.client.HDel(ctx, r.key, fields...).Err(); err != nil {
		r.logger.Error("Failed to delete options from Redis",
			zap.String("key", r.key),
			zap.Strings("fields", fields),
			zap.Error(err))
		return fmt.Errorf("failed to delete options: %w", err)
	}

	return nil
}
