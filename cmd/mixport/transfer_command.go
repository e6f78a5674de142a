package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mixport/internal/logging"
	"mixport/internal/preflight"
	"mixport/internal/report"
	"mixport/internal/services"
	"mixport/internal/transfer"
)

func newTransferCommand(ctx *commandContext) *cobra.Command {
	var opts transfer.Options
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "transfer <playlist-url>",
		Short: "Copy a YouTube playlist to a new Spotify playlist",
		Long: `Copy a YouTube playlist to Spotify.

Every video title is cleaned, searched with several query variants and
matched against the catalog. Matched tracks are added to a new playlist whose
name and description are generated from the tracks unless given.

Exit status is 0 when at least half of the videos matched, 2 when fewer did
and 1 when nothing matched or the transfer failed.

Examples:
  mixport transfer "https://www.youtube.com/playlist?list=PL..."
  mixport transfer URL -n "Road Trip" --private
  mixport transfer URL --report-only --max-tracks 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			for _, check := range preflight.DirectoryChecks(cfg) {
				if !check.Passed {
					return services.Wrap(services.ErrConfiguration, "cli", "preflight", check.Name+": "+check.Detail, nil)
				}
			}

			logger, err := ctx.logger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			runOpts := []transfer.Option{}
			if !jsonOutput {
				runOpts = append(runOpts, transfer.WithProgress(func(p transfer.Progress) {
					fmt.Fprintln(out, renderProgress(p, colorize))
				}))
			}

			runner, clients, err := transfer.NewFromConfig(cmd.Context(), cfg, logger, runOpts...)
			if err != nil {
				return err
			}
			defer func() {
				if err := clients.Close(); err != nil {
					logger.Debug("close clients failed", logging.Error(err))
				}
			}()

			opts.SourceRef = args[0]
			if !jsonOutput {
				fmt.Fprintf(out, "📥 Listing %s\n", opts.SourceRef)
			}
			rep, err := runner.Run(cmd.Context(), opts)
			if err != nil {
				if rep != nil && !jsonOutput {
					printTransferSummary(out, "", rep, colorize)
				}
				return err
			}

			if jsonOutput {
				if err := writeJSON(cmd, rep); err != nil {
					return err
				}
			} else {
				printTransferSummary(out, filepath.Join(cfg.Paths.ReportDir, rep.FileStem()+".txt"), rep, colorize)
			}
			if code := rep.ExitCode(); code != services.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Playlist name (generated when empty)")
	cmd.Flags().StringVarP(&opts.Description, "description", "d", "", "Playlist description (generated when empty)")
	cmd.Flags().BoolVar(&opts.Private, "private", false, "Create a private playlist")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Create the playlist even if one with the same name exists")
	cmd.Flags().BoolVar(&opts.ReportOnly, "report-only", false, "Match and write the report without creating a playlist")
	cmd.Flags().IntVar(&opts.MaxTracks, "max-tracks", 0, "Only process the first N videos (0 = all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	return cmd
}

func renderProgress(p transfer.Progress, colorize bool) string {
	counter := "[" + strconv.Itoa(p.Index) + "/" + strconv.Itoa(p.Total) + "]"
	title := truncateRunes(p.Title, progressTitleWidth)
	if !colorize {
		if p.Match == nil {
			return fmt.Sprintf("%s not found: %s", counter, title)
		}
		return fmt.Sprintf("%s found: %s -> %s (%.2f)", counter, title, p.Match.Label(), p.Match.Score)
	}
	if p.Match == nil {
		return colorizeText(fmt.Sprintf("❌ %s %s", counter, title), statusError, true)
	}
	return colorizeText(fmt.Sprintf("✅ %s %s → %s (%.2f)", counter, title, p.Match.Label(), p.Match.Score), statusOK, true)
}

func printTransferSummary(out io.Writer, reportPath string, rep *report.Report, colorize bool) {
	fmt.Fprintln(out)
	for _, line := range renderSectionHeader("Transfer summary", colorize) {
		fmt.Fprintln(out, line)
	}
	playlist := rep.PlaylistURL
	switch {
	case rep.ReportOnly:
		playlist = "not created (report only)"
	case playlist == "":
		playlist = "not created"
	}
	pairs := [][2]string{
		{"Run", rep.RunID},
		{"Name", rep.PlaylistName},
		{"Playlist", playlist},
		{"Videos", humanize.Comma(int64(rep.TotalItems))},
		{"Found", humanize.Comma(int64(len(rep.Found)))},
		{"Not found", humanize.Comma(int64(len(rep.NotFound)))},
		{"Success rate", fmt.Sprintf("%.1f%%", rep.SuccessRate())},
		{"Time", rep.ProcessingTime.Round(100 * time.Millisecond).String()},
	}
	if reportPath != "" {
		pairs = append(pairs, [2]string{"Report", reportPath})
	}
	fmt.Fprintln(out, renderKeyValues(pairs))
	if len(rep.NotFound) > 0 {
		fmt.Fprintln(out, colorizeText("Not found:", statusWarn, colorize))
		for _, title := range rep.NotFound {
			fmt.Fprintln(out, "  - "+strings.TrimSpace(title))
		}
	}
}
