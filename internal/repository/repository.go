package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/model"
)

// Stable keys of the persisted documents.
const (
	KeyAuth     = "auth"
	KeyCommerce = "commerce"
	KeyCurrency = "currency"
)

// DocumentVersion is the envelope version written by this build.
const DocumentVersion = 1

// StateRepository persists whole documents under stable keys. The in-memory
// stores decide when to save; backends only move bytes.
type StateRepository interface {
	// Load decodes the document stored under key into dst.
	// It returns false when nothing is stored under key.
	Load(ctx context.Context, key string, dst any) (bool, error)

	// Save replaces the document stored under key with src.
	Save(ctx context.Context, key string, src any) error

	// Close releases resources held by the repository.
	Close() error
}

// envelope wraps every stored document with a version tag so later builds
// can add fields without breaking older data.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	Data    json.RawMessage `json:"data"`
}

// encodeDocument marshals src inside a versioned envelope.
func encodeDocument(src any) ([]byte, error) {
	data, err := json.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	raw, err := json.Marshal(envelope{
		Version: DocumentVersion,
		SavedAt: time.Now().UTC(),
		Data:    data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	return raw, nil
}

// decodeDocument unmarshals an envelope produced by encodeDocument into dst.
func decodeDocument(raw []byte, dst any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	if env.Version > DocumentVersion {
		return fmt.Errorf("document version %d: %w", env.Version, model.ErrUnsupportedDocument)
	}

	if len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return nil
}
