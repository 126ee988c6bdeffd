package storage

import (
	"context"

	"github.com/poiesic/profindex/core"
)

// EmbeddingCache stores vectors keyed by core.ContentKey(model, text).
type EmbeddingCache interface {
	// Get returns the cached vector for key. The boolean is false on a miss.
	Get(ctx context.Context, key core.ID) ([]float32, bool, error)

	// Put stores vector under key, replacing any previous value.
	Put(ctx context.Context, key core.ID, vector []float32) error

	// Close releases the underlying store.
	Close() error
}
