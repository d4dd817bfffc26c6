package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisRepository stores each document as a plain string value.
type redisRepository struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisRepository creates a Redis-backed repository. Keys are stored as
// prefix+key. The repository takes ownership of the client.
func NewRedisRepository(ctx context.Context, client *redis.Client, prefix string, logger zerolog.Logger) (StateRepository, error) {
	logger = logger.With().Str("repository", "redis").Logger()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("failed to ping redis")
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &redisRepository{
		client: client,
		prefix: prefix,
		logger: logger,
	}, nil
}

func (r *redisRepository) Load(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug().Str("key", key).Msg("document not found")
			return false, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to get document")
		return false, fmt.Errorf("failed to get document %s: %w", key, err)
	}

	if err := decodeDocument(raw, dst); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to decode document")
		return false, err
	}

	return true, nil
}

func (r *redisRepository) Save(ctx context.Context, key string, src any) error {
	raw, err := encodeDocument(src)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.prefix+key, raw, 0).Err(); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to set document")
		return fmt.Errorf("failed to set document %s: %w", key, err)
	}

	return nil
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}
