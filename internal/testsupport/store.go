package testsupport

import (
	"context"
	"testing"

	"mixport/internal/config"
	"mixport/internal/searchcache"
)

// MustOpenSearchCache opens the configured search cache for tests and
// registers cleanup.
func MustOpenSearchCache(t testing.TB, cfg *config.Config) *searchcache.Cache {
	t.Helper()

	cache, err := searchcache.Open(context.Background(), cfg.SearchCachePath())
	if err != nil {
		t.Fatalf("searchcache.Open: %v", err)
	}
	t.Cleanup(func() {
		cache.Close()
	})
	return cache
}
