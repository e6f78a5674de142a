package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mixport/internal/searchcache"
	"mixport/internal/transfer"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:         "cache",
		Short:       "Inspect and manage the catalog search cache",
		Annotations: map[string]string{"skipConfigLoad": "true"},
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))

	return cacheCmd
}

// withSearchCache opens the cache for the duration of fn. The cache is
// opened even when disabled so stale files can be inspected and cleared.
func withSearchCache(cmd *cobra.Command, ctx *commandContext, fn func(*searchcache.Cache, time.Duration) error) error {
	cfg, err := ctx.looseConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger, err := ctx.logger(cfg)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	if !cfg.SearchCache.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Search cache is disabled (search_cache.enabled = false)")
	}
	cache, err := transfer.OpenSearchCache(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer cache.Close()
	return fn(cache, cfg.SearchCacheTTL())
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show search cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSearchCache(cmd, ctx, func(cache *searchcache.Cache, ttl time.Duration) error {
				stats, err := cache.Stats(cmd.Context(), ttl)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, stats)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderKeyValues([][2]string{
					{"Path", stats.Path},
					{"Entries", humanize.Comma(int64(stats.Entries))},
					{"Fresh", fmt.Sprintf("%s (ttl %s)", humanize.Comma(int64(stats.Fresh)), ttl)},
					{"Empty results", humanize.Comma(int64(stats.Empty))},
					{"Oldest", relativeTime(stats.Oldest)},
					{"Newest", relativeTime(stats.Newest)},
				}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print stats as JSON")
	return cmd
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached search result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSearchCache(cmd, ctx, func(cache *searchcache.Cache, _ time.Duration) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s cached searches\n", humanize.Comma(removed))
				return nil
			})
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cached search results older than the TTL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSearchCache(cmd, ctx, func(cache *searchcache.Cache, ttl time.Duration) error {
				age := ttl
				if cmd.Flags().Changed("older-than") {
					age = olderThan
				}
				removed, err := cache.Prune(cmd.Context(), age)
				if err != nil {
					return err
				}
				if removed == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cache entries pruned")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %s cached searches older than %s\n", humanize.Comma(removed), age)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Age threshold (default: search_cache.ttl_hours)")
	return cmd
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}
