package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/poiesic/profindex/ai"
	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/index"
)

// DefaultKeywordBoost multiplies the score of hits containing every query term.
const DefaultKeywordBoost = 1.2

// Searcher embeds queries and runs them against the index.
type Searcher struct {
	embedder     ai.Embedder
	index        index.Searcher
	minScore     float64
	keywordBoost float64
	logger       *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMinScore drops hits scoring below score.
func WithMinScore(score float64) Option {
	return func(s *Searcher) error {
		s.minScore = score
		return nil
	}
}

// WithKeywordBoost multiplies the score of hits containing every query term
// by factor and re-sorts. A factor of 1 or less disables boosting.
func WithKeywordBoost(factor float64) Option {
	return func(s *Searcher) error {
		s.keywordBoost = factor
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(embedder ai.Embedder, idx index.Searcher, opts ...Option) (*Searcher, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	s := &Searcher{
		embedder: embedder,
		index:    idx,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "searcher")
	return s, nil
}

// Search returns up to k profiles most similar to query, best first.
func (s *Searcher) Search(ctx context.Context, query string, k int) ([]core.SearchHit, error) {
	return s.SearchWithMonitor(ctx, query, k, nil)
}

// SearchWithMonitor is Search with stage callbacks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, k int, monitor SearchMonitor) ([]core.SearchHit, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k < 1 {
		return []core.SearchHit{}, nil
	}

	monitor.Start(query)

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterEmbedding(len(embedding))

	hits, err := s.index.SearchVector(ctx, embedding, k)
	if err != nil {
		s.logger.Error("error querying index", "err", err)
		return nil, err
	}
	monitor.AfterVectorSearch(hits)

	if s.keywordBoost > 1 {
		terms := queryTerms(query)
		for i := range hits {
			if containsAllQueryTerms(hits[i].JSONData, terms) {
				hits[i].Score *= s.keywordBoost
				monitor.KeywordHit(hits[i])
			}
		}
		slices.SortStableFunc(hits, func(a, b core.SearchHit) int {
			switch {
			case a.Score > b.Score:
				return -1
			case a.Score < b.Score:
				return 1
			default:
				return 0
			}
		})
	}

	results := make([]core.SearchHit, 0, len(hits))
	for _, h := range hits {
		if h.Score >= s.minScore {
			results = append(results, h)
		}
	}
	if len(results) > k {
		results = results[:k]
	}

	s.logger.Debug("search complete", "query", query, "hits", len(results))
	monitor.Finish(results)
	return results, nil
}
