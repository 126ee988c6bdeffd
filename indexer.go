package profindex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/profindex/ai"
	"github.com/poiesic/profindex/ai/openai"
	"github.com/poiesic/profindex/config"
	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/dataset"
	"github.com/poiesic/profindex/index"
	"github.com/poiesic/profindex/index/azure"
	"github.com/poiesic/profindex/index/qdrant"
	"github.com/poiesic/profindex/ingestion"
	"github.com/poiesic/profindex/search"
	"github.com/poiesic/profindex/storage"
	"github.com/poiesic/profindex/storage/badger"
)

// Indexer wires the embedder, index backend and optional embedding cache.
type Indexer struct {
	embedder     ai.Embedder
	store        index.Store
	cache        storage.EmbeddingCache
	schema       *index.Schema
	pipelineOpts []ingestion.Option
	logger       *slog.Logger
}

// Option configures an Indexer.
type Option func(*indexerOptions)

type indexerOptions struct {
	embedder     ai.Embedder
	store        index.Store
	cache        storage.EmbeddingCache
	overrides    *index.SchemaOverrides
	pipelineOpts []ingestion.Option
	logger       *slog.Logger
}

// WithEmbedder uses embedder instead of building one from settings.
func WithEmbedder(embedder ai.Embedder) Option {
	return func(o *indexerOptions) {
		o.embedder = embedder
	}
}

// WithStore uses store instead of connecting to the configured backend.
func WithStore(store index.Store) Option {
	return func(o *indexerOptions) {
		o.store = store
	}
}

// WithCache uses cache instead of opening the configured cache directory.
func WithCache(cache storage.EmbeddingCache) Option {
	return func(o *indexerOptions) {
		o.cache = cache
	}
}

// WithSchemaOverrides adjusts the default schema.
func WithSchemaOverrides(overrides *index.SchemaOverrides) Option {
	return func(o *indexerOptions) {
		o.overrides = overrides
	}
}

// WithPipelineOptions passes options to every ingestion pipeline.
func WithPipelineOptions(opts ...ingestion.Option) Option {
	return func(o *indexerOptions) {
		o.pipelineOpts = append(o.pipelineOpts, opts...)
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *indexerOptions) {
		o.logger = logger
	}
}

// NewFromEnv loads settings with config.FromEnv and calls New. A missing
// variable fails here, before any client is constructed.
func NewFromEnv(lookup config.LookupFunc, opts ...Option) (*Indexer, error) {
	settings, err := config.FromEnv(lookup)
	if err != nil {
		return nil, err
	}
	return New(settings, opts...)
}

// New creates an Indexer from settings. Components not supplied through
// options are built from settings.
func New(settings *config.Settings, opts ...Option) (*Indexer, error) {
	o := &indexerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	schema := index.DefaultSchema(settings.Index.IndexName, settings.AI.Dimensions)
	if err := o.overrides.Apply(schema); err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	idx := &Indexer{
		embedder:     o.embedder,
		store:        o.store,
		cache:        o.cache,
		schema:       schema,
		pipelineOpts: o.pipelineOpts,
		logger:       o.logger.With("component", "indexer"),
	}

	if idx.embedder == nil {
		embedder, err := openai.NewEmbedder(settings.AI)
		if err != nil {
			return nil, fmt.Errorf("create embedder: %w", err)
		}
		idx.embedder = embedder
	}

	if idx.store == nil {
		store, err := openStore(settings.Index, schema, o.logger)
		if err != nil {
			return nil, fmt.Errorf("connect index: %w", err)
		}
		idx.store = store
	}

	if idx.cache == nil && settings.CacheDir != "" {
		cache, err := badger.NewEmbeddingCache(settings.CacheDir)
		if err != nil {
			idx.store.Close()
			return nil, fmt.Errorf("open embedding cache: %w", err)
		}
		idx.cache = cache
	}

	return idx, nil
}

func openStore(cfg *index.Config, schema *index.Schema, logger *slog.Logger) (index.Store, error) {
	switch cfg.Backend {
	case index.BackendQdrant:
		algo, _ := schema.Algorithm()
		return qdrant.New(cfg, qdrant.WithLogger(logger), qdrant.WithEfSearch(algo.HNSW.EfSearch))
	case index.BackendAzure:
		return azure.NewClient(cfg, azure.WithLogger(logger))
	default:
		return nil, fmt.Errorf("%w: %q", index.ErrUnknownBackend, cfg.Backend)
	}
}

// Schema returns the index schema in effect.
func (x *Indexer) Schema() *index.Schema {
	return x.schema
}

// EnsureIndex creates the index or updates it to match the schema.
func (x *Indexer) EnsureIndex(ctx context.Context) error {
	x.logger.Info("ensuring index", "name", x.schema.Name, "dimensions", x.schema.Dimensions())
	if err := x.store.CreateOrUpdateIndex(ctx, x.schema); err != nil {
		return fmt.Errorf("ensure index %q: %w", x.schema.Name, err)
	}
	return nil
}

// IngestFile reads the CSV at path and ingests every row.
func (x *Indexer) IngestFile(ctx context.Context, path string, opts ...ingestion.Option) (*ingestion.Result, error) {
	records, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	x.logger.Info("read dataset", "path", path, "records", len(records))
	return x.Ingest(ctx, records, opts...)
}

// Ingest embeds records and uploads them. Record i must carry Row i+1, which
// becomes its document id. opts are applied after the Indexer's own pipeline options.
func (x *Indexer) Ingest(ctx context.Context, records []*core.Record, opts ...ingestion.Option) (*ingestion.Result, error) {
	all := []ingestion.Option{
		ingestion.WithSchema(x.schema),
		ingestion.WithLogger(x.logger),
	}
	if x.cache != nil {
		all = append(all, ingestion.WithCache(x.cache))
	}
	all = append(all, x.pipelineOpts...)
	all = append(all, opts...)

	pipeline, err := ingestion.NewPipeline(x.embedder, x.store, all...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	return pipeline.Run(ctx, records)
}

// Searcher returns a query searcher over the same embedder and index.
func (x *Indexer) Searcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithLogger(x.logger)}, opts...)
	return search.NewSearcher(x.embedder, x.store, opts...)
}

// Close closes the index connection and the embedding cache, including
// ones supplied through options.
func (x *Indexer) Close() error {
	var errs []error
	if err := x.store.Close(); err != nil {
		x.logger.Error("error closing index", "err", err)
		errs = append(errs, err)
	}
	if x.cache != nil {
		if err := x.cache.Close(); err != nil {
			x.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
