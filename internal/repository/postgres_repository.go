package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresRepository implements StateRepository using PostgreSQL.
// The pool is owned by the caller.
type postgresRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresRepository creates a new PostgreSQL-backed state repository.
// The state_documents table must exist (see database.EnsureSchema).
func NewPostgresRepository(pool *pgxpool.Pool, logger zerolog.Logger) StateRepository {
	return &postgresRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

// Load retrieves the document stored under key.
func (r *postgresRepository) Load(ctx context.Context, key string, dst any) (bool, error) {
	query := `
		SELECT body
		FROM state_documents
		WHERE key = $1
	`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("key", key).Msg("document not found")
			return false, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to query document")
		return false, fmt.Errorf("failed to query document %s: %w", key, err)
	}

	if err := decodeDocument(raw, dst); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to decode document")
		return false, err
	}

	return true, nil
}

// Save upserts the document stored under key in a single statement.
func (r *postgresRepository) Save(ctx context.Context, key string, src any) error {
	raw, err := encodeDocument(src)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO state_documents (key, version, body, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET version = EXCLUDED.version, body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.pool.Exec(ctx, query, key, DocumentVersion, raw); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to save document")
		return fmt.Errorf("failed to save document %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Int("bytes", len(raw)).Msg("document saved")

	return nil
}

func (r *postgresRepository) Close() error {
	return nil
}
