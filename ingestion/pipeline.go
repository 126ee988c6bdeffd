package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/poiesic/profindex/ai"
	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
	"github.com/poiesic/profindex/storage"
)

// DefaultRetryDelay is the first backoff delay when retries are enabled.
const DefaultRetryDelay = 500 * time.Millisecond

// Pipeline embeds records and uploads them to an index.
type Pipeline struct {
	embedder      ai.Embedder
	uploader      index.Uploader
	cache         storage.EmbeddingCache
	pool          *ants.Pool
	limiter       *rate.Limiter
	schema        *index.Schema
	dimensions    int
	batchSize     int
	maxAttempts   int
	retryDelay    time.Duration
	progress      io.Writer
	progressEvery int
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConcurrency sets the number of records embedded in parallel.
// Default is 1. Document ids and order do not depend on this value.
func WithConcurrency(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithMaxAttempts sets how many times each embedding request is tried.
// Default is 1, meaning no retries.
func WithMaxAttempts(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = n
		return nil
	}
}

// WithRetryDelay sets the first backoff delay. Each retry doubles it.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Pipeline) error {
		p.retryDelay = d
		return nil
	}
}

// WithRateLimit caps embedding requests per second across all workers.
// Zero or negative disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(p *Pipeline) error {
		if perSecond <= 0 {
			p.limiter = nil
			return nil
		}
		p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		return nil
	}
}

// WithCache reuses vectors from cache and stores new ones in it.
func WithCache(cache storage.EmbeddingCache) Option {
	return func(p *Pipeline) error {
		p.cache = cache
		return nil
	}
}

// WithBatchSize sets the number of documents per upload call.
// Zero sends all documents in one call. Default is DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) error {
		p.batchSize = max(n, 0)
		return nil
	}
}

// WithDimensions sets the required vector length. Default is core.DefaultDimensions.
func WithDimensions(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return fmt.Errorf("dimensions must be greater than 0, got %d", n)
		}
		p.dimensions = n
		return nil
	}
}

// WithSchema checks vectors and mapped documents against schema before upload.
// It also sets the required vector length to the schema's dimensions.
func WithSchema(schema *index.Schema) Option {
	return func(p *Pipeline) error {
		if schema == nil {
			return fmt.Errorf("%w: schema is nil", index.ErrInvalidSchema)
		}
		if err := schema.Validate(); err != nil {
			return err
		}
		p.schema = schema
		p.dimensions = schema.Dimensions()
		return nil
	}
}

// WithProgress writes embedding progress to w every `every` records.
func WithProgress(w io.Writer, every int) Option {
	return func(p *Pipeline) error {
		p.progress = w
		p.progressEvery = every
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline. Call Release when done.
func NewPipeline(embedder ai.Embedder, uploader index.Uploader, opts ...Option) (*Pipeline, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if uploader == nil {
		return nil, ErrUploaderRequired
	}

	p := &Pipeline{
		embedder:    embedder,
		uploader:    uploader,
		dimensions:  core.DefaultDimensions,
		batchSize:   DefaultBatchSize,
		maxAttempts: 1,
		retryDelay:  DefaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	if p.pool == nil {
		pool, err := ants.NewPool(1)
		if err != nil {
			return nil, err
		}
		p.pool = pool
	}
	p.logger = p.logger.With("component", "ingestion")
	return p, nil
}

// Result summarizes a completed run.
type Result struct {
	// Records is the number of records embedded and mapped.
	Records int
	// CacheHits is the number of vectors served from the embedding cache.
	CacheHits int
	// Upload is the combined outcome of every upload call.
	Upload *index.UploadResult
}

// Run embeds every record, maps each to a document and uploads the documents.
// Record i must carry Row i+1. Nothing is uploaded unless every record embeds
// successfully and every document passes validation.
// On ErrPartialUpload the returned Result is populated alongside the error.
func (p *Pipeline) Run(ctx context.Context, records []*core.Record) (*Result, error) {
	result := &Result{Upload: &index.UploadResult{}}
	if len(records) == 0 {
		p.logger.Info("no records to ingest")
		return result, nil
	}

	jobs, err := p.prepare(records)
	if err != nil {
		return nil, err
	}

	p.logger.Info("embedding records", "count", len(jobs), "model", p.embedder.Model())
	var progress *ProgressTracker
	if p.progress != nil {
		progress = NewProgressTracker(p.progress, "Embedding", len(jobs), p.progressEvery)
		progress.Start()
	}

	stage := &embedStage{
		embedder:    p.embedder,
		cache:       p.cache,
		limiter:     p.limiter,
		pool:        p.pool,
		dimensions:  p.dimensions,
		maxAttempts: p.maxAttempts,
		retryDelay:  p.retryDelay,
		logger:      p.logger,
	}
	vectors, stats, err := stage.embedAll(ctx, jobs, progress)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		p.logger.Error("embedding aborted, nothing uploaded", "err", err)
		return nil, err
	}
	result.CacheHits = int(stats.cacheHits.Load())

	docs := make([]core.Document, len(records))
	for i, record := range records {
		if docs[i], err = MapDocument(record, vectors[i]); err != nil {
			return nil, err
		}
	}
	if err := p.validateDocuments(docs); err != nil {
		p.logger.Error("document validation failed, nothing uploaded", "err", err)
		return nil, err
	}
	result.Records = len(docs)

	upload, err := NewBatchUploader(p.uploader, p.batchSize, p.logger).Upload(ctx, docs)
	result.Upload = upload
	if err != nil {
		return result, err
	}

	p.logger.Info("ingestion complete", "records", result.Records, "cache_hits", result.CacheHits)
	return result, nil
}

// prepare validates records and serializes each to its JSON text.
// Record i must carry Row i+1 so document ids run "1".."N" in slice order.
func (p *Pipeline) prepare(records []*core.Record) ([]embedJob, error) {
	jobs := make([]embedJob, len(records))
	seen := make(map[int]bool, len(records))
	for i, record := range records {
		if err := core.ValidateRecord(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if seen[record.Row] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, core.DocumentID(record.Row))
		}
		seen[record.Row] = true
		if record.Row != i+1 {
			return nil, fmt.Errorf("%w: record %d has row %d", ErrRowOutOfSequence, i+1, record.Row)
		}

		jobs[i] = embedJob{row: record.Row, text: record.JSON()}
	}
	return jobs, nil
}

func (p *Pipeline) validateDocuments(docs []core.Document) error {
	if p.schema != nil {
		return p.schema.ValidateDocuments(docs)
	}
	for i := range docs {
		if err := core.ValidateDocument(&docs[i], p.dimensions); err != nil {
			return err
		}
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
