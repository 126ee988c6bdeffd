package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/time/rate"

	"github.com/poiesic/profindex/ai"
	"github.com/poiesic/profindex/core"
	"github.com/poiesic/profindex/storage"
)

// embedStage computes one vector per text, optionally in parallel.
type embedStage struct {
	embedder    ai.Embedder
	cache       storage.EmbeddingCache
	limiter     *rate.Limiter
	pool        *ants.Pool
	dimensions  int
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

// embedJob is one record's text and the row it came from.
type embedJob struct {
	row  int
	text string
}

type embedStats struct {
	cacheHits atomic.Int64
}

// embedAll returns vectors in the order of jobs. The first failure cancels
// outstanding work and is returned wrapped in ErrEmbeddingFailed.
func (s *embedStage) embedAll(ctx context.Context, jobs []embedJob, progress *ProgressTracker) ([][]float32, *embedStats, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	stats := &embedStats{}
	vectors := make([][]float32, len(jobs))

	var wg sync.WaitGroup
	for i, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			vec, hit, err := s.embedOne(ctx, job.text)
			if err != nil {
				cancel(fmt.Errorf("%w: row %d: %w", ErrEmbeddingFailed, job.row, err))
				return
			}
			if hit {
				stats.cacheHits.Add(1)
			}
			vectors[i] = vec
			if progress != nil {
				progress.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			cancel(fmt.Errorf("submit embedding job: %w", err))
			break
		}
	}
	wg.Wait()

	if err := context.Cause(ctx); err != nil {
		return nil, stats, err
	}
	return vectors, stats, nil
}

// embedOne returns the vector for text and whether it came from the cache.
func (s *embedStage) embedOne(ctx context.Context, text string) ([]float32, bool, error) {
	var key core.ID
	if s.cache != nil {
		key = core.ContentKey(s.embedder.Model(), text)
		vec, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("embedding cache read failed", "err", err)
		case ok && len(vec) == s.dimensions:
			return vec, true, nil
		}
	}

	var vec []float32
	err := RetryWithBackoff(ctx, func(ctx context.Context) error {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		v, err := s.embedder.EmbedText(ctx, text)
		if err != nil {
			return err
		}
		vec = v
		return nil
	}, s.maxAttempts, s.retryDelay, s.logger)
	if err != nil {
		return nil, false, err
	}

	if err := core.ValidateVector(vec, s.dimensions); err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, vec); err != nil {
			s.logger.Warn("embedding cache write failed", "err", err)
		}
	}
	return vec, false, nil
}
