package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mixport/internal/logging"
	"mixport/internal/matching"
	"mixport/internal/services"
)

// DefaultDelay is the pause enforced between two catalog searches.
const DefaultDelay = 100 * time.Millisecond

// Boundary paces a Searcher and converts its failures into empty results.
type Boundary struct {
	searcher   Searcher
	delay      time.Duration
	logger     *slog.Logger
	mu         sync.Mutex
	lastLookup time.Time
	failures   int
}

// BoundaryOption configures a Boundary.
type BoundaryOption func(*Boundary)

// WithDelay overrides DefaultDelay. Negative values disable pacing.
func WithDelay(delay time.Duration) BoundaryOption {
	return func(b *Boundary) {
		if delay < 0 {
			delay = 0
		}
		b.delay = delay
	}
}

// WithLogger attaches a logger for failed searches.
func WithLogger(logger *slog.Logger) BoundaryOption {
	return func(b *Boundary) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBoundary wraps searcher.
func NewBoundary(searcher Searcher, opts ...BoundaryOption) *Boundary {
	b := &Boundary{
		searcher:   searcher,
		delay:      DefaultDelay,
		logger:     logging.NewNop(),
		lastLookup: time.Unix(0, 0),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Search satisfies matching.SearchFunc. Failures are logged and reported
// as an empty result.
func (b *Boundary) Search(ctx context.Context, query string, limit int) []matching.Candidate {
	if b == nil || b.searcher == nil {
		return []matching.Candidate{}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []matching.Candidate{}
	}
	if err := b.wait(ctx); err != nil {
		return []matching.Candidate{}
	}

	results, err := b.searcher.Search(ctx, query, limit)
	if err != nil {
		b.mu.Lock()
		b.failures++
		b.mu.Unlock()
		logging.WarnWithContext(logging.WithContext(ctx, b.logger), "catalog search failed", "catalog_search_failed",
			logging.String("query", query),
			logging.Int("limit", limit),
			logging.Error(err),
			logging.Bool("retryable", services.Retryable(err)),
			logging.String(logging.FieldErrorHint, services.Hint(err)),
			logging.String(logging.FieldImpact, "query treated as having no results"))
		return []matching.Candidate{}
	}
	if results == nil {
		return []matching.Candidate{}
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Failures returns how many searches failed since the boundary was built.
func (b *Boundary) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}

func (b *Boundary) wait(ctx context.Context) error {
	b.mu.Lock()
	wait := b.delay - time.Since(b.lastLookup)
	if wait > 0 {
		b.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		b.mu.Lock()
	}
	b.lastLookup = time.Now()
	b.mu.Unlock()
	return nil
}
