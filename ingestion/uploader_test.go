package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
	"github.com/poiesic/profindex/index/mock"
)

func makeDocs(n int) []core.Document {
	docs := make([]core.Document, n)
	for i := range docs {
		docs[i] = core.Document{ID: core.DocumentID(i + 1), JSONData: "{}", Vector: []float32{1}}
	}
	return docs
}

func batchSizes(batches [][]core.Document) []int {
	sizes := make([]int, len(batches))
	for i, b := range batches {
		sizes[i] = len(b)
	}
	return sizes
}

func TestBatchUploader_Chunks(t *testing.T) {
	store := mock.NewMockStore()
	u := NewBatchUploader(store, 100, nil)

	result, err := u.Upload(context.Background(), makeDocs(250))
	require.NoError(t, err)
	assert.Equal(t, 250, result.Succeeded)
	assert.Equal(t, []int{100, 100, 50}, batchSizes(store.Batches()))

	uploaded := store.Uploaded()
	for i, d := range uploaded {
		assert.Equal(t, core.DocumentID(i+1), d.ID, "order must be preserved")
	}
}

func TestBatchUploader_SingleCall(t *testing.T) {
	store := mock.NewMockStore()
	u := NewBatchUploader(store, 0, nil)

	_, err := u.Upload(context.Background(), makeDocs(250))
	require.NoError(t, err)
	assert.Equal(t, []int{250}, batchSizes(store.Batches()))
}

func TestBatchUploader_Empty(t *testing.T) {
	store := mock.NewMockStore()
	result, err := NewBatchUploader(store, 10, nil).Upload(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, result.Succeeded)
	assert.Empty(t, store.Batches())
}

func TestBatchUploader_PartialFailure(t *testing.T) {
	store := mock.NewMockStore()
	store.UploadFunc = func(_ context.Context, docs []core.Document) (*index.UploadResult, error) {
		res := &index.UploadResult{}
		for _, d := range docs {
			if d.ID == "2" || d.ID == "4" {
				res.Failed = append(res.Failed, index.DocumentFailure{Key: d.ID, StatusCode: 400, Message: "bad vector"})
				continue
			}
			res.Succeeded++
		}
		return res, nil
	}

	result, err := NewBatchUploader(store, 2, nil).Upload(context.Background(), makeDocs(5))
	require.ErrorIs(t, err, ErrPartialUpload)
	assert.Contains(t, err.Error(), "document 4: status 400: bad vector")

	assert.Len(t, store.Batches(), 3, "every batch is attempted")
	assert.Equal(t, 3, result.Succeeded)
	require.Len(t, result.Failed, 2)
	assert.Equal(t, "2", result.Failed[0].Key)
}

func TestBatchUploader_ServiceErrorStops(t *testing.T) {
	store := mock.NewMockStore()
	calls := 0
	serviceErr := &index.ServiceError{Op: "upload", StatusCode: 503, Message: "busy"}
	store.UploadFunc = func(_ context.Context, docs []core.Document) (*index.UploadResult, error) {
		calls++
		if calls == 2 {
			return nil, serviceErr
		}
		return &index.UploadResult{Succeeded: len(docs)}, nil
	}

	result, err := NewBatchUploader(store, 2, nil).Upload(context.Background(), makeDocs(6))
	var se *index.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Contains(t, err.Error(), "3..4")
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, result.Succeeded)
}
