package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mixport/internal/matching"
	"mixport/internal/services"
)

type artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	Popularity int      `json:"popularity"`
	DurationMS int64    `json:"duration_ms"`
	PreviewURL string   `json:"preview_url"`
	Artists    []artist `json:"artists"`
	Album      struct {
		Name string `json:"name"`
	} `json:"album"`
}

type searchResponse struct {
	Tracks struct {
		Items []*track `json:"items"`
		Total int      `json:"total"`
	} `json:"tracks"`
}

// Search finds up to limit tracks for query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]matching.Candidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrValidation, component, "search", "query must not be empty", nil)
	}
	if limit <= 0 {
		limit = matching.DefaultFanOut
	}
	limit = min(limit, maxSearchLimit)

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	if c.market != "" {
		params.Set("market", c.market)
	}

	var payload searchResponse
	if err := c.do(ctx, http.MethodGet, "/search", params, nil, &payload); err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(payload.Tracks.Items))
	for _, item := range payload.Tracks.Items {
		// Unavailable tracks come back as null entries.
		if item == nil || item.ID == "" {
			continue
		}
		candidates = append(candidates, item.candidate())
	}
	return candidates, nil
}

func (t *track) candidate() matching.Candidate {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}
	return matching.Candidate{
		ID:         t.ID,
		Name:       t.Name,
		Artists:    names,
		Album:      t.Album.Name,
		URI:        t.URI,
		Popularity: t.Popularity,
		Duration:   time.Duration(t.DurationMS) * time.Millisecond,
		PreviewURL: t.PreviewURL,
	}
}
