package report

import (
	"time"

	"github.com/dustin/go-humanize"

	"mixport/internal/matching"
	"mixport/internal/services"
)

// FoundTrack pairs a source title with the catalog track chosen for it.
type FoundTrack struct {
	SourceTitle string  `json:"youtube_title"`
	Name        string  `json:"spotify_name"`
	Artists     string  `json:"spotify_artists"`
	ID          string  `json:"spotify_id"`
	URI         string  `json:"spotify_uri"`
	Score       float64 `json:"relevance_score"`
}

// Report is the outcome of one transfer run.
type Report struct {
	RunID               string        `json:"run_id"`
	SourceRef           string        `json:"source"`
	PlaylistName        string        `json:"playlist_name"`
	PlaylistDescription string        `json:"playlist_description,omitempty"`
	PlaylistURL         string        `json:"playlist_url,omitempty"`
	ReportOnly          bool          `json:"report_only"`
	TotalItems          int           `json:"total_youtube_videos"`
	Found               []FoundTrack  `json:"found_tracks"`
	NotFound            []string      `json:"not_found_tracks"`
	StartedAt           time.Time     `json:"started_at"`
	FinishedAt          time.Time     `json:"finished_at,omitzero"`
	ProcessingTime      time.Duration `json:"-"`
	ProcessingSeconds   float64       `json:"processing_time_seconds"`
}

// New starts a report for a run.
func New(runID, sourceRef string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		SourceRef: sourceRef,
		StartedAt: startedAt,
		Found:     []FoundTrack{},
		NotFound:  []string{},
	}
}

// AddFound records a matched source item.
func (r *Report) AddFound(sourceTitle string, match matching.Scored) {
	r.Found = append(r.Found, FoundTrack{
		SourceTitle: sourceTitle,
		Name:        match.Name,
		Artists:     match.ArtistLine(),
		ID:          match.ID,
		URI:         match.URI,
		Score:       match.Score,
	})
}

// AddNotFound records a source item without an accepted match.
func (r *Report) AddNotFound(sourceTitle string) {
	r.NotFound = append(r.NotFound, sourceTitle)
}

// Finish stamps the end time and processing duration.
func (r *Report) Finish(at time.Time) {
	r.FinishedAt = at
	r.ProcessingTime = max(at.Sub(r.StartedAt), 0)
	r.ProcessingSeconds = r.ProcessingTime.Seconds()
}

// URIs returns the catalog references of every found track in order.
func (r *Report) URIs() []string {
	uris := make([]string, 0, len(r.Found))
	for _, f := range r.Found {
		uris = append(uris, f.URI)
	}
	return uris
}

// SuccessRate is the share of source items matched, in percent.
func (r *Report) SuccessRate() float64 {
	return float64(len(r.Found)) / float64(max(r.TotalItems, 1)) * 100
}

// ExitCode maps the match rate to the process exit status: failure when
// nothing matched, partial below half, success otherwise.
func (r *Report) ExitCode() int {
	switch {
	case len(r.Found) == 0:
		return services.ExitFailure
	case 2*len(r.Found) < r.TotalItems:
		return services.ExitPartial
	default:
		return services.ExitOK
	}
}

// Headline is a one-line summary for notifications and terminal output.
func (r *Report) Headline() string {
	return humanize.Comma(int64(len(r.Found))) + "/" + humanize.Comma(int64(r.TotalItems)) +
		" tracks matched (" + humanize.FtoaWithDigits(r.SuccessRate(), 1) + "%)"
}
