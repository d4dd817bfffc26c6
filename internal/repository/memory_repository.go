package repository

import (
	"context"
	"slices"
	"sync"
)

// memoryRepository keeps encoded documents in a map. Documents are stored
// encoded so callers can never alias saved state.
type memoryRepository struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryRepository creates an ephemeral in-process repository.
func NewMemoryRepository() StateRepository {
	return &memoryRepository{
		docs: make(map[string][]byte),
	}
}

func (r *memoryRepository) Load(_ context.Context, key string, dst any) (bool, error) {
	r.mu.RLock()
	raw, ok := r.docs[key]
	r.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := decodeDocument(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *memoryRepository) Save(_ context.Context, key string, src any) error {
	raw, err := encodeDocument(src)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.docs[key] = slices.Clone(raw)
	r.mu.Unlock()

	return nil
}

func (r *memoryRepository) Close() error {
	return nil
}
