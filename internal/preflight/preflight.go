package preflight

import (
	"context"

	"mixport/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes all applicable preflight checks for the given config.
// The search cache is only checked when it is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := DirectoryChecks(cfg)
	if cfg.SearchCache.Enabled {
		results = append(results, CheckSearchCache(ctx, cfg.SearchCachePath()))
	}
	results = append(results,
		CheckSpotify(ctx, cfg),
		CheckYouTube(ctx, cfg.YouTube.BaseURL, cfg.YouTube.APIKey),
	)
	return results
}

// DirectoryChecks verifies the report, log and cache directories.
func DirectoryChecks(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Report directory", cfg.Paths.ReportDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
