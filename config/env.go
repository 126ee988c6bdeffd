package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/profindex/ai"
	"github.com/poiesic/profindex/index"
)

// Environment variable names.
const (
	EnvOpenAIAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvOpenAIEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvOpenAIAPIVersion = "AZURE_OPENAI_API_VERSION"
	EnvEmbeddingModel   = "AZURE_OPENAI_EMBEDDING_MODEL"
	EnvEmbeddingAPI     = "PROFINDEX_EMBEDDING_API"

	EnvSearchAPIKey     = "AZURE_SEARCH_API_KEY"
	EnvSearchEndpoint   = "AZURE_SEARCH_ENDPOINT"
	EnvSearchIndexName  = "AZURE_SEARCH_INDEX_NAME"
	EnvSearchAPIVersion = "AZURE_SEARCH_API_VERSION"

	EnvQdrantEndpoint   = "QDRANT_ENDPOINT"
	EnvQdrantAPIKey     = "QDRANT_API_KEY"
	EnvQdrantCollection = "QDRANT_COLLECTION"
	EnvQdrantTLS        = "QDRANT_USE_TLS"

	EnvBackend  = "PROFINDEX_BACKEND"
	EnvCacheDir = "PROFINDEX_CACHE_DIR"
)

// LookupFunc reports the value of an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(name string) (string, bool)

// Overlay returns a LookupFunc that prefers non-empty values in overrides and
// falls back to base. A nil base uses os.LookupEnv.
func Overlay(overrides map[string]string, base LookupFunc) LookupFunc {
	if base == nil {
		base = os.LookupEnv
	}
	return func(name string) (string, bool) {
		if v, ok := overrides[name]; ok && v != "" {
			return v, true
		}
		return base(name)
	}
}

// Settings is the configuration of every remote component.
type Settings struct {
	AI       *ai.Config
	Index    *index.Config
	CacheDir string
}

type reader struct {
	lookup  LookupFunc
	missing []string
}

func (r *reader) optional(name string) string {
	v, _ := r.lookup(name)
	return strings.TrimSpace(v)
}

func (r *reader) required(name string) string {
	v := r.optional(name)
	if v == "" {
		r.missing = append(r.missing, name)
	}
	return v
}

// FromEnv builds Settings from lookup. All missing required variables are
// reported together in a *MissingEnvError.
func FromEnv(lookup LookupFunc) (*Settings, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	r := &reader{lookup: lookup}

	backend, err := index.ParseBackend(r.optional(EnvBackend))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvBackend, err)
	}

	aiOpts := []ai.ConfigOption{
		ai.WithAPIKey(r.required(EnvOpenAIAPIKey)),
		ai.WithEndpoint(r.required(EnvOpenAIEndpoint)),
	}
	if v := r.optional(EnvOpenAIAPIVersion); v != "" {
		aiOpts = append(aiOpts, ai.WithAPIVersion(v))
	}
	if v := r.optional(EnvEmbeddingModel); v != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(v))
	}
	if v := r.optional(EnvEmbeddingAPI); v != "" {
		aiOpts = append(aiOpts, ai.WithAPIType(ai.APIType(strings.ToLower(v))))
	}

	indexOpts := []index.ConfigOption{index.WithBackend(backend)}
	switch backend {
	case index.BackendQdrant:
		indexOpts = append(indexOpts,
			index.WithEndpoint(r.required(EnvQdrantEndpoint)),
			index.WithIndexName(r.required(EnvQdrantCollection)),
			index.WithAPIKey(r.optional(EnvQdrantAPIKey)),
		)
		if v := r.optional(EnvQdrantTLS); v != "" {
			useTLS, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", EnvQdrantTLS, err)
			}
			indexOpts = append(indexOpts, index.WithTLS(useTLS))
		}
	default:
		indexOpts = append(indexOpts,
			index.WithAPIKey(r.required(EnvSearchAPIKey)),
			index.WithEndpoint(r.required(EnvSearchEndpoint)),
			index.WithIndexName(r.required(EnvSearchIndexName)),
		)
		if v := r.optional(EnvSearchAPIVersion); v != "" {
			indexOpts = append(indexOpts, index.WithAPIVersion(v))
		}
	}

	if len(r.missing) > 0 {
		return nil, &MissingEnvError{Names: r.missing}
	}

	s := &Settings{
		AI:       ai.NewConfig(aiOpts...),
		Index:    index.NewConfig(indexOpts...),
		CacheDir: r.optional(EnvCacheDir),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks both component configurations.
func (s *Settings) Validate() error {
	if err := s.AI.Validate(); err != nil {
		return err
	}
	return s.Index.Validate()
}
