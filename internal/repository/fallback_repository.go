package repository

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// fallbackRepository reads from a remote primary and falls back to a local
// copy when the primary is unreachable. Saves go to the primary and are
// mirrored to the local copy.
type fallbackRepository struct {
	primary   StateRepository
	secondary StateRepository
	logger    zerolog.Logger
}

// NewFallbackRepository creates a repository that tries primary first, then
// secondary. A failed primary save is returned to the caller; a failed
// mirror save is only logged.
func NewFallbackRepository(primary, secondary StateRepository, logger zerolog.Logger) StateRepository {
	return &fallbackRepository{
		primary:   primary,
		secondary: secondary,
		logger:    logger.With().Str("component", "fallback-repository").Logger(),
	}
}

// Load attempts the primary first. A missing document in the primary is
// authoritative; only errors trigger the fallback.
func (r *fallbackRepository) Load(ctx context.Context, key string, dst any) (bool, error) {
	found, err := r.primary.Load(ctx, key, dst)
	if err == nil {
		return found, nil
	}

	r.logger.Warn().
		Err(err).
		Str("key", key).
		Msg("failed to load from primary, falling back to local copy")

	return r.secondary.Load(ctx, key, dst)
}

func (r *fallbackRepository) Save(ctx context.Context, key string, src any) error {
	if err := r.primary.Save(ctx, key, src); err != nil {
		return err
	}

	if err := r.secondary.Save(ctx, key, src); err != nil {
		r.logger.Warn().
			Err(err).
			Str("key", key).
			Msg("failed to mirror document to local copy")
	}

	return nil
}

func (r *fallbackRepository) Close() error {
	return errors.Join(r.primary.Close(), r.secondary.Close())
}
