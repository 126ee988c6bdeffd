package index

import (
	"context"

	"github.com/poiesic/profindex/core"
)

// Manager creates or updates an index to match a schema.
type Manager interface {
	// CreateOrUpdateIndex makes the remote index match schema.
	// Calling it repeatedly with the same schema must be safe.
	CreateOrUpdateIndex(ctx context.Context, schema *Schema) error
}

// Uploader stores documents in the index. Existing documents with the same id are overwritten.
type Uploader interface {
	// UploadDocuments stores docs in a single service call.
	// A nil error with a non-empty UploadResult.Failed means the service
	// accepted the request but rejected some documents.
	UploadDocuments(ctx context.Context, docs []core.Document) (*UploadResult, error)
}

// Searcher runs k-nearest-neighbor queries against the index.
type Searcher interface {
	// SearchVector returns up to k documents closest to vector, best first.
	SearchVector(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error)
}

// Store is a full index backend bound to one index.
type Store interface {
	Manager
	Uploader
	Searcher

	// Close releases connections held by the backend.
	Close() error
}

// DocumentFailure describes one document the service refused.
type DocumentFailure struct {
	Key        string
	StatusCode int
	Message    string
}

// UploadResult reports the outcome of one or more upload calls.
type UploadResult struct {
	Succeeded int
	Failed    []DocumentFailure
}

// Merge adds other's counts and failures into r.
func (r *UploadResult) Merge(other *UploadResult) {
	if other == nil {
		return
	}
	r.Succeeded += other.Succeeded
	r.Failed = append(r.Failed, other.Failed...)
}
