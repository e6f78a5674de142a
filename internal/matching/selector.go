package matching

import (
	"context"
	"log/slog"
	"sort"

	"mixport/internal/logging"
)

const (
	// DefaultThreshold is the minimum score a match must exceed.
	DefaultThreshold = 0.3
	// DefaultFanOut is the number of candidates requested per query.
	DefaultFanOut = 5
)

// SearchFunc returns up to limit candidates for query. Implementations
// reduce collaborator failures to an empty result.
type SearchFunc func(ctx context.Context, query string, limit int) []Candidate

// Selector pools candidates across queries and picks the best one.
type Selector struct {
	search    SearchFunc
	threshold float64
	fanOut    int
	logger    *slog.Logger
}

// Option customizes a Selector.
type Option func(*Selector)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(threshold float64) Option {
	return func(s *Selector) {
		s.threshold = threshold
	}
}

// WithFanOut overrides DefaultFanOut. Non-positive values are ignored.
func WithFanOut(limit int) Option {
	return func(s *Selector) {
		if limit > 0 {
			s.fanOut = limit
		}
	}
}

// WithLogger attaches a logger for per-candidate diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSelector builds a selector around search.
func NewSelector(search SearchFunc, opts ...Option) *Selector {
	s := &Selector{
		search:    search,
		threshold: DefaultThreshold,
		fanOut:    DefaultFanOut,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold reports the acceptance threshold in use.
func (s *Selector) Threshold() float64 {
	return s.threshold
}

// FindBestMatch runs each query in order, scores every returned candidate
// against original and returns the highest scoring one when it exceeds the
// threshold. Queries stop early only when ctx is cancelled.
func (s *Selector) FindBestMatch(ctx context.Context, queries []string, original string) (Scored, bool) {
	logger := logging.WithContext(ctx, s.logger)
	pool := s.rank(ctx, logger, queries, original)
	if len(pool) == 0 {
		logger.Debug("no candidates returned",
			logging.String("title", original),
			logging.Int("query_count", len(queries)))
		return Scored{}, false
	}
	best := pool[0]

	if best.Score <= s.threshold {
		logger.Debug("best candidate below threshold",
			logging.Args(append(logging.DecisionAttrs("match_selection", "rejected", "score below threshold"),
				logging.String("title", original),
				logging.String("candidate", best.Label()),
				logging.Float64("score", best.Score),
				logging.Float64("threshold", s.threshold),
				logging.Int("pool_size", len(pool)))...)...)
		return Scored{}, false
	}

	logger.Debug("candidate accepted",
		logging.Args(append(logging.DecisionAttrs("match_selection", "accepted", "score above threshold"),
			logging.String("title", original),
			logging.String("candidate", best.Label()),
			logging.String("candidate_id", best.ID),
			logging.Float64("score", best.Score),
			logging.Float64("threshold", s.threshold),
			logging.Int("pool_size", len(pool)))...)...)
	return best, true
}

// Rank returns every pooled candidate for queries, best first. Candidates
// with equal scores keep the order in which they were returned.
func (s *Selector) Rank(ctx context.Context, queries []string, original string) []Scored {
	return s.rank(ctx, logging.WithContext(ctx, s.logger), queries, original)
}

func (s *Selector) rank(ctx context.Context, logger *slog.Logger, queries []string, original string) []Scored {
	pool := s.collect(ctx, logger, queries, original)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	return pool
}

func (s *Selector) collect(ctx context.Context, logger *slog.Logger, queries []string, original string) []Scored {
	if s.search == nil {
		return nil
	}
	var pool []Scored
	for idx, query := range queries {
		if ctx.Err() != nil {
			break
		}
		results := s.search(ctx, query, s.fanOut)
		for _, candidate := range results {
			score := Score(candidate, original)
			logger.Debug("scored candidate",
				logging.Int("query_index", idx),
				logging.String("query", query),
				logging.String("candidate", candidate.Label()),
				logging.Int("popularity", candidate.Popularity),
				logging.Float64("score", score))
			pool = append(pool, Scored{Candidate: candidate, Score: score})
		}
	}
	return pool
}
