// Package mock provides an in-memory index.Store for testing.
//
// MockStore records every call and keeps uploaded documents in memory.
// Searches rank stored documents by dot product with the query vector.
//
//	store := mock.NewMockStore()
//	store.UploadFunc = func(ctx context.Context, docs []core.Document) (*index.UploadResult, error) {
//	    return nil, errors.New("service unavailable")
//	}
package mock

import (
	"context"
	"slices"
	"sync"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// MockStore is a test double for index.Store.
type MockStore struct {
	// CreateFunc is called by CreateOrUpdateIndex if set.
	CreateFunc func(ctx context.Context, schema *index.Schema) error

	// UploadFunc is called by UploadDocuments if set.
	// If nil, every document is stored and reported as succeeded.
	UploadFunc func(ctx context.Context, docs []core.Document) (*index.UploadResult, error)

	mu      sync.Mutex
	schemas []*index.Schema
	batches [][]core.Document
	docs    map[string]core.Document
	queries [][]float32
	closed  bool
}

var _ index.Store = (*MockStore)(nil)

// NewMockStore creates an empty store.
// Note: Returns concrete type to allow test assertions.
func NewMockStore() *MockStore {
	return &MockStore{docs: make(map[string]core.Document)}
}

// CreateOrUpdateIndex records schema.
func (m *MockStore) CreateOrUpdateIndex(ctx context.Context, schema *index.Schema) error {
	m.mu.Lock()
	m.schemas = append(m.schemas, schema)
	fn := m.CreateFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, schema)
	}
	return schema.Validate()
}

// UploadDocuments records the batch and stores docs by id.
func (m *MockStore) UploadDocuments(ctx context.Context, docs []core.Document) (*index.UploadResult, error) {
	m.mu.Lock()
	m.batches = append(m.batches, slices.Clone(docs))
	fn := m.UploadFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, docs)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return &index.UploadResult{Succeeded: len(docs)}, nil
}

// SearchVector ranks stored documents by dot product with vector.
func (m *MockStore) SearchVector(ctx context.Context, vector []float32, k int) ([]core.SearchHit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, slices.Clone(vector))

	hits := make([]core.SearchHit, 0, len(m.docs))
	for _, d := range m.docs {
		hits = append(hits, core.SearchHit{ID: d.ID, Score: dot(vector, d.Vector), JSONData: d.JSONData})
	}
	slices.SortFunc(hits, func(a, b core.SearchHit) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	if len(hits) > k {
		hits = hits[:max(k, 0)]
	}
	return hits, nil
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Schemas returns every schema passed to CreateOrUpdateIndex.
func (m *MockStore) Schemas() []*index.Schema {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.schemas)
}

// Batches returns every batch passed to UploadDocuments, in call order.
func (m *MockStore) Batches() [][]core.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.batches)
}

// Uploaded returns every document from every batch, in call order.
func (m *MockStore) Uploaded() []core.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []core.Document
	for _, b := range m.batches {
		all = append(all, b...)
	}
	return all
}

// Queries returns every vector passed to SearchVector.
func (m *MockStore) Queries() [][]float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.queries)
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range min(len(a), len(b)) {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
