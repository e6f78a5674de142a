package searchcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"mixport/internal/catalog"
	"mixport/internal/logging"
	"mixport/internal/matching"
)

// Key folds whitespace and case so equivalent queries share a row.
func Key(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

// Lookup returns cached candidates for query and limit when they are
// younger than ttl.
func (c *Cache) Lookup(ctx context.Context, query string, limit int, ttl time.Duration) ([]matching.Candidate, bool, error) {
	var (
		payload   string
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT results_json, fetched_at FROM search_results WHERE query = ? AND result_limit = ?`,
		Key(query), limit,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup search result: %w", err)
	}
	if c.now().Sub(time.Unix(0, fetchedAt)) >= ttl {
		return nil, false, nil
	}
	var candidates []matching.Candidate
	if err := json.Unmarshal([]byte(payload), &candidates); err != nil {
		return nil, false, fmt.Errorf("decode cached results: %w", err)
	}
	return candidates, true, nil
}

// Store records candidates for query and limit, replacing any older row.
func (c *Cache) Store(ctx context.Context, query string, limit int, candidates []matching.Candidate) error {
	if candidates == nil {
		candidates = []matching.Candidate{}
	}
	payload, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("encode search results: %w", err)
	}
	_, err = c.exec(ctx,
		`INSERT INTO search_results (query, result_limit, results_json, result_count, fetched_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(query, result_limit) DO UPDATE SET
             results_json = excluded.results_json,
             result_count = excluded.result_count,
             fetched_at = excluded.fetched_at`,
		Key(query), limit, string(payload), len(candidates), c.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store search result: %w", err)
	}
	return nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Path    string    `json:"path"`
	Entries int       `json:"entries"`
	Fresh   int       `json:"fresh"`
	Empty   int       `json:"empty"`
	Oldest  time.Time `json:"oldest,omitzero"`
	Newest  time.Time `json:"newest,omitzero"`
}

// Stats reports entry counts; entries younger than ttl count as fresh.
func (c *Cache) Stats(ctx context.Context, ttl time.Duration) (Stats, error) {
	cutoff := c.now().Add(-ttl).UnixNano()
	var (
		entries, fresh, empty int
		oldest, newest        sql.NullInt64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
                COALESCE(SUM(CASE WHEN fetched_at > ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN result_count = 0 THEN 1 ELSE 0 END), 0),
                MIN(fetched_at), MAX(fetched_at)
         FROM search_results`, cutoff,
	).Scan(&entries, &fresh, &empty, &oldest, &newest)
	if err != nil {
		return Stats{}, fmt.Errorf("read cache stats: %w", err)
	}
	stats := Stats{Path: c.path, Entries: entries, Fresh: fresh, Empty: empty}
	if oldest.Valid {
		stats.Oldest = time.Unix(0, oldest.Int64)
	}
	if newest.Valid {
		stats.Newest = time.Unix(0, newest.Int64)
	}
	return stats, nil
}

// Clear removes every cached result and returns the number of rows deleted.
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	n, err := c.exec(ctx, `DELETE FROM search_results`)
	if err != nil {
		return 0, fmt.Errorf("clear search cache: %w", err)
	}
	return n, nil
}

// Prune removes results older than olderThan and returns the number of rows deleted.
func (c *Cache) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := c.now().Add(-olderThan).UnixNano()
	n, err := c.exec(ctx, `DELETE FROM search_results WHERE fetched_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune search cache: %w", err)
	}
	return n, nil
}

// Wrap returns a Searcher that serves fresh cached results and stores the
// results of successful misses.
func (c *Cache) Wrap(next catalog.Searcher, ttl time.Duration) catalog.Searcher {
	return &cachedSearcher{cache: c, next: next, ttl: ttl}
}

type cachedSearcher struct {
	cache *Cache
	next  catalog.Searcher
	ttl   time.Duration
}

func (s *cachedSearcher) Search(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	logger := logging.WithContext(ctx, s.cache.logger)
	cached, ok, err := s.cache.Lookup(ctx, query, limit, s.ttl)
	if err != nil {
		logging.WarnWithContext(logger, "search cache lookup failed", "search_cache_lookup_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldImpact, "falling back to a live search"))
	}
	if ok {
		logger.Debug("search cache hit",
			logging.String("query", query),
			logging.Int("result_count", len(cached)))
		return cached, nil
	}

	results, err := s.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Store(ctx, query, limit, results); err != nil {
		logging.WarnWithContext(logger, "search cache store failed", "search_cache_store_failed",
			logging.String("query", query),
			logging.Error(err),
			logging.String(logging.FieldImpact, "result not cached"))
	}
	return results, nil
}
