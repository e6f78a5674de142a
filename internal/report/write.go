package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mixport/internal/fileutil"
)

const (
	filePrefix  = "transfer_report_"
	stampLayout = "20060102_150405"
	ruleWidth   = 60
	subWidth    = 40
)

// FileStem is the base name shared by the text and JSON files.
func (r *Report) FileStem() string {
	at := r.FinishedAt
	if at.IsZero() {
		at = r.StartedAt
	}
	return filePrefix + at.Format(stampLayout)
}

// Text renders the report in its plain-text layout.
func (r *Report) Text() string {
	generated := r.FinishedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	var b strings.Builder
	b.WriteString("🎵 YouTube → Spotify Playlist Transfer Report\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generated.Format(time.DateTime))
	fmt.Fprintf(&b, "Playlist: %s\n", r.PlaylistName)
	b.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")

	b.WriteString("📊 SUMMARY:\n")
	fmt.Fprintf(&b, "  - YouTube videos analyzed: %d\n", r.TotalItems)
	fmt.Fprintf(&b, "  - Tracks found on Spotify: %d\n", len(r.Found))
	fmt.Fprintf(&b, "  - Tracks not found: %d\n", len(r.NotFound))
	fmt.Fprintf(&b, "  - Success rate: %.1f%%\n", r.SuccessRate())
	fmt.Fprintf(&b, "  - Playlist URL: %s\n\n", r.PlaylistURL)

	if len(r.Found) > 0 {
		b.WriteString("✅ FOUND TRACKS:\n")
		b.WriteString(strings.Repeat("-", subWidth) + "\n")
		for i, track := range r.Found {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, track.SourceTitle)
			fmt.Fprintf(&b, "    → %s - %s\n", track.Name, track.Artists)
			fmt.Fprintf(&b, "    Score: %.2f\n\n", track.Score)
		}
	}

	if len(r.NotFound) > 0 {
		b.WriteString("❌ NOT FOUND TRACKS:\n")
		b.WriteString(strings.Repeat("-", subWidth) + "\n")
		for i, title := range r.NotFound {
			fmt.Fprintf(&b, "%2d. %s\n", i+1, title)
		}
	}
	return b.String()
}

// WriteText writes the text report into dir and returns its path.
func (r *Report) WriteText(dir string) (string, error) {
	path := filepath.Join(dir, r.FileStem()+".txt")
	if err := writeFile(path, []byte(r.Text())); err != nil {
		return "", err
	}
	return path, nil
}

// WriteJSON writes the JSON report into dir and returns its path.
func (r *Report) WriteJSON(dir string) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	path := filepath.Join(dir, r.FileStem()+".json")
	if err := writeFile(path, append(data, '\n')); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
