package matching

import (
	"strings"
	"time"
)

// Candidate is one catalog search hit.
type Candidate struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Artists    []string      `json:"artists"`
	Album      string        `json:"album,omitempty"`
	URI        string        `json:"uri"`
	Popularity int           `json:"popularity"`
	Duration   time.Duration `json:"duration"`
	PreviewURL string        `json:"preview_url,omitempty"`
}

// ArtistLine joins the candidate performers for display.
func (c Candidate) ArtistLine() string {
	return strings.Join(c.Artists, ", ")
}

// Label renders "name - performers", the form used for collection naming and
// reports.
func (c Candidate) Label() string {
	if len(c.Artists) == 0 {
		return c.Name
	}
	return c.Name + " - " + c.ArtistLine()
}

// Scored pairs a candidate with its relevance score.
type Scored struct {
	Candidate
	Score float64 `json:"relevance_score"`
}
