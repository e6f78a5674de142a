package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mixport/internal/catalog"
	"mixport/internal/logging"
	"mixport/internal/matching"
	"mixport/internal/transfer"
)

type matchResult struct {
	cleanResult
	Threshold  float64           `json:"threshold"`
	Candidates []matching.Scored `json:"candidates"`
	Match      *matching.Scored  `json:"match"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var threshold float64
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <title>",
		Short: "Search the catalog for one video title and show the scoring",
		Long: `Run the matching step for a single raw video title.

Every query variant is searched, every pooled candidate is printed with its
relevance score and the candidate that would be selected is shown. Use it to
troubleshoot titles that a transfer did not match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.logger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = cfg.Matching.RelevanceThreshold
			}

			client, err := transfer.NewSpotifyClient(cfg)
			if err != nil {
				return err
			}
			var searcher catalog.Searcher = client
			if cfg.SearchCache.Enabled {
				cache, err := transfer.OpenSearchCache(cmd.Context(), cfg, logger)
				if err != nil {
					return err
				}
				defer cache.Close()
				searcher = cache.Wrap(client, cfg.SearchCacheTTL())
			}

			boundary := catalog.NewBoundary(searcher,
				catalog.WithDelay(cfg.RequestDelay()),
				catalog.WithLogger(logger))
			selector := matching.NewSelector(boundary.Search,
				matching.WithThreshold(threshold),
				matching.WithFanOut(cfg.Matching.SearchLimit),
				matching.WithLogger(logging.NewComponentLogger(logger, "matching")))

			raw := args[0]
			result := matchResult{cleanResult: analyzeTitle(raw), Threshold: threshold}
			if limit := cfg.Matching.MaxSearchQueries; limit > 0 && len(result.Queries) > limit {
				result.Queries = result.Queries[:limit]
			}
			result.Candidates = selector.Rank(cmd.Context(), result.Queries, raw)
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if len(result.Candidates) > 0 && result.Candidates[0].Score > threshold {
				best := result.Candidates[0]
				result.Match = &best
			}
			if result.Candidates == nil {
				result.Candidates = []matching.Scored{}
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			printCleanResult(out, result.cleanResult)
			fmt.Fprintln(out)
			if len(result.Candidates) == 0 {
				fmt.Fprintln(out, "Candidates: none")
			} else {
				rows := make([][]string, 0, len(result.Candidates))
				for i, c := range result.Candidates {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						fmt.Sprintf("%.3f", c.Score),
						c.Name,
						c.ArtistLine(),
						c.Album,
						strconv.Itoa(c.Popularity),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Score", "Track", "Artists", "Album", "Popularity"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignRight},
				))
			}
			if result.Match != nil {
				fmt.Fprintln(out, colorizeText(fmt.Sprintf("Selected: %s (%.3f > %.2f)", result.Match.Label(), result.Match.Score, threshold), statusOK, colorize))
			} else {
				fmt.Fprintln(out, colorizeText(fmt.Sprintf("No match above threshold %.2f", threshold), statusWarn, colorize))
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Relevance threshold override (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}
