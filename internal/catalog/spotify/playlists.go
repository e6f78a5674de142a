package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"mixport/internal/catalog"
	"mixport/internal/services"
)

type playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type playlistPage struct {
	Items []*playlist `json:"items"`
	Next  string      `json:"next"`
	Total int         `json:"total"`
}

// CreateCollection creates a playlist for the current user and returns its id.
func (c *Client) CreateCollection(ctx context.Context, name, description string, public bool) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", services.Wrap(services.ErrValidation, component, "create playlist", "name must not be empty", nil)
	}
	userID, err := c.currentUserID(ctx)
	if err != nil {
		return "", err
	}
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}
	var created playlist
	if err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/playlists", nil, body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", services.Wrap(services.ErrExternal, component, "create playlist", "response carried no playlist id", nil)
	}
	return created.ID, nil
}

// AddItems appends track URIs to a playlist in one request.
func (c *Client) AddItems(ctx context.Context, id string, refs []string) error {
	if len(refs) == 0 {
		return nil
	}
	if len(refs) > catalog.MaxBatchSize {
		return services.Wrap(services.ErrValidation, component, "add tracks",
			"at most "+strconv.Itoa(catalog.MaxBatchSize)+" items per request", nil)
	}
	body := map[string]any{"uris": refs}
	return c.do(ctx, http.MethodPost, "/playlists/"+url.PathEscape(id)+"/tracks", nil, body, nil)
}

// ListCollections returns every playlist in the current user's library.
func (c *Client) ListCollections(ctx context.Context) ([]catalog.Collection, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(playlistPageSize))
	params.Set("offset", "0")

	var out []catalog.Collection
	path := "/me/playlists"
	query := params
	for {
		var page playlistPage
		if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
			return nil, err
		}
		for _, p := range page.Items {
			if p == nil || p.ID == "" {
				continue
			}
			link := p.ExternalURLs.Spotify
			if link == "" {
				link = c.CollectionURL(p.ID)
			}
			out = append(out, catalog.Collection{ID: p.ID, Name: p.Name, URL: link, TrackCount: p.Tracks.Total})
		}
		if page.Next == "" || len(page.Items) == 0 {
			return out, nil
		}
		path, query = page.Next, nil
	}
}
