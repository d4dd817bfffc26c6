package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileRepository stores one JSON file per document key in a directory.
type fileRepository struct {
	dir    string
	logger zerolog.Logger
}

// NewFileRepository creates a repository rooted at dir, creating it if needed.
func NewFileRepository(dir string, logger zerolog.Logger) (StateRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	return &fileRepository{
		dir:    dir,
		logger: logger.With().Str("repository", "file").Logger(),
	}, nil
}

func (r *fileRepository) path(key string) string {
	return filepath.Join(r.dir, key+".json")
}

// Load reads the document file for key.
func (r *fileRepository) Load(ctx context.Context, key string, dst any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, err := os.ReadFile(r.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug().Str("key", key).Msg("document not found")
			return false, nil
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to read document")
		return false, fmt.Errorf("failed to read document %s: %w", key, err)
	}

	if err := decodeDocument(raw, dst); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to decode document")
		return false, err
	}

	return true, nil
}

// Save writes the document to a temporary file and renames it over the
// previous version, so readers never observe a partial write.
func (r *fileRepository) Save(ctx context.Context, key string, src any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := encodeDocument(src)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write document %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync document %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close document %s: %w", key, err)
	}

	if err := os.Rename(tmpName, r.path(key)); err != nil {
		os.Remove(tmpName)
		r.logger.Error().Err(err).Str("key", key).Msg("failed to commit document")
		return fmt.Errorf("failed to commit document %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Int("bytes", len(raw)).Msg("document saved")

	return nil
}

func (r *fileRepository) Close() error {
	return nil
}
