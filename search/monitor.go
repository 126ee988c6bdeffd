package search

import (
	"log/slog"
	"time"

	"github.com/poiesic/profindex/core"
)

// SearchMonitor receives callbacks at each stage of a search.
type SearchMonitor interface {
	Start(query string)
	AfterEmbedding(dimensions int)
	AfterVectorSearch(hits []core.SearchHit)
	KeywordHit(hit core.SearchHit)
	Finish(hits []core.SearchHit)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterEmbedding(_ int)                 {}
func (n *noopMonitor) AfterVectorSearch(_ []core.SearchHit) {}
func (n *noopMonitor) KeywordHit(_ core.SearchHit)          {}
func (n *noopMonitor) Finish(_ []core.SearchHit)            {}

// TimingMonitor measures the embedding and vector-search stages of a search
// and logs them at debug level when the search finishes.
// A TimingMonitor tracks one search at a time.
type TimingMonitor struct {
	logger *slog.Logger
	now    func() time.Time

	query        string
	start        time.Time
	last         time.Time
	embedding    time.Duration
	vectorSearch time.Duration
	total        time.Duration
	keywordHits  int
}

var _ SearchMonitor = (*TimingMonitor)(nil)

// NewTimingMonitor creates a TimingMonitor. A nil logger uses slog.Default().
func NewTimingMonitor(logger *slog.Logger) *TimingMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &TimingMonitor{
		logger: logger.With("component", "search"),
		now:    time.Now,
	}
}

func (m *TimingMonitor) lap() time.Duration {
	t := m.now()
	d := t.Sub(m.last)
	m.last = t
	return d
}

func (m *TimingMonitor) Start(query string) {
	m.query = query
	m.start = m.now()
	m.last = m.start
	m.embedding, m.vectorSearch, m.total = 0, 0, 0
	m.keywordHits = 0
}

func (m *TimingMonitor) AfterEmbedding(_ int) {
	m.embedding = m.lap()
}

func (m *TimingMonitor) AfterVectorSearch(_ []core.SearchHit) {
	m.vectorSearch = m.lap()
}

func (m *TimingMonitor) KeywordHit(_ core.SearchHit) {
	m.keywordHits++
}

func (m *TimingMonitor) Finish(hits []core.SearchHit) {
	m.total = m.now().Sub(m.start)
	m.logger.Debug("search timing",
		"query", m.query,
		"embedding", m.embedding,
		"vector_search", m.vectorSearch,
		"total", m.total,
		"hits", len(hits),
		"keyword_hits", m.keywordHits)
}

// Embedding returns the duration of the last search's embedding call.
func (m *TimingMonitor) Embedding() time.Duration { return m.embedding }

// VectorSearch returns the duration of the last search's index query.
func (m *TimingMonitor) VectorSearch() time.Duration { return m.vectorSearch }

// Total returns the duration of the last completed search.
func (m *TimingMonitor) Total() time.Duration { return m.total }
