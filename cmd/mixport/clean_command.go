package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"mixport/internal/titles"
)

type cleanResult struct {
	Title   string   `json:"title"`
	Cleaned string   `json:"cleaned"`
	Artist  string   `json:"artist,omitempty"`
	Work    string   `json:"work,omitempty"`
	Queries []string `json:"queries"`
}

func analyzeTitle(raw string) cleanResult {
	result := cleanResult{
		Title:   raw,
		Cleaned: titles.Clean(raw),
		Queries: titles.SearchQueries(raw),
	}
	if artist, work, ok := titles.ExtractArtistTitle(raw); ok {
		result.Artist = artist
		result.Work = work
	}
	return result
}

func newCleanCommand() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "clean <title>...",
		Short: "Show how video titles are cleaned and searched",
		Long: `Clean one or more raw video titles without contacting any service.

For each title the cleaned form, the detected artist/title pair and the
catalog search queries are printed in the order they would be tried.`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]cleanResult, 0, len(args))
			for _, raw := range args {
				results = append(results, analyzeTitle(raw))
			}
			if jsonOutput {
				return writeJSON(cmd, results)
			}
			out := cmd.OutOrStdout()
			for i, result := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				printCleanResult(out, result)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}

func printCleanResult(out io.Writer, result cleanResult) {
	fmt.Fprintf(out, "Title:   %s\n", result.Title)
	fmt.Fprintf(out, "Cleaned: %s\n", result.Cleaned)
	if result.Artist != "" {
		fmt.Fprintf(out, "Artist:  %s\n", result.Artist)
		fmt.Fprintf(out, "Track:   %s\n", result.Work)
	} else {
		fmt.Fprintln(out, "Artist:  (no separator found)")
	}
	fmt.Fprintln(out, "Queries:")
	for i, q := range result.Queries {
		fmt.Fprintf(out, "  %d. %s\n", i+1, q)
	}
}
