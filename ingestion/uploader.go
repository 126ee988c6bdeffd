package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// DefaultBatchSize is the number of documents sent per upload call.
const DefaultBatchSize = 100

// BatchUploader sends documents to an index in fixed-size batches.
type BatchUploader struct {
	uploader  index.Uploader
	batchSize int
	logger    *slog.Logger
}

// NewBatchUploader creates a BatchUploader. A batchSize of 0 or less sends every
// document in a single call.
func NewBatchUploader(uploader index.Uploader, batchSize int, logger *slog.Logger) *BatchUploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUploader{
		uploader:  uploader,
		batchSize: batchSize,
		logger:    logger.With("component", "batch-uploader"),
	}
}

// Upload sends docs in order. A transport or service error stops at the failing
// batch. Documents the service rejects are collected across all batches and
// reported together as ErrPartialUpload. The returned result is never nil.
func (u *BatchUploader) Upload(ctx context.Context, docs []core.Document) (*index.UploadResult, error) {
	total := &index.UploadResult{}
	if len(docs) == 0 {
		return total, nil
	}

	size := u.batchSize
	if size <= 0 {
		size = len(docs)
	}

	batches := 0
	for batch := range slices.Chunk(docs, size) {
		first, last := batch[0].ID, batch[len(batch)-1].ID
		u.logger.Debug("uploading batch", "first", first, "last", last, "count", len(batch))

		res, err := u.uploader.UploadDocuments(ctx, batch)
		if err != nil {
			return total, fmt.Errorf("upload documents %s..%s: %w", first, last, err)
		}
		total.Merge(res)
		batches++
	}

	u.logger.Info("upload finished", "batches", batches, "succeeded", total.Succeeded, "failed", len(total.Failed))
	if len(total.Failed) > 0 {
		return total, partialUploadError(total.Failed, len(docs))
	}
	return total, nil
}

func partialUploadError(failed []index.DocumentFailure, total int) error {
	errs := make([]error, 0, len(failed)+1)
	errs = append(errs, fmt.Errorf("%w: %d of %d", ErrPartialUpload, len(failed), total))
	for _, f := range failed {
		errs = append(errs, fmt.Errorf("document %s: status %d: %s", f.Key, f.StatusCode, f.Message))
	}
	return errors.Join(errs...)
}
