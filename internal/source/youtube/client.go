package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"mixport/internal/logging"
	"mixport/internal/services"
	"mixport/internal/source"
)

const (
	pageSize                = 50
	defaultConcurrency      = 4
	defaultMinDuration      = 30 * time.Second
	maxPages                = 200
	errorBodyLimit          = 512
	component               = "youtube"
	unavailableDeletedTitle = "Deleted video"
	unavailablePrivateTitle = "Private video"
)

// Client lists playlists through the YouTube Data API.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	concurrency int
	minDuration time.Duration
	maxDuration time.Duration
	logger      *slog.Logger
}

var _ source.Lister = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithConcurrency bounds parallel duration lookups. Non-positive values are ignored.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithDurationBounds drops items shorter than shortest or longer than
// longest. A zero longest disables the upper bound.
func WithDurationBounds(shortest, longest time.Duration) Option {
	return func(c *Client) {
		c.minDuration = shortest
		c.maxDuration = longest
	}
}

// WithLogger attaches a logger for listing diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a YouTube Data API client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client",
			"api key required (youtube.api_key or YOUTUBE_API_KEY)", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "base url required", nil)
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		concurrency: defaultConcurrency,
		minDuration: defaultMinDuration,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		Snippet struct {
			Title                  string `json:"title"`
			VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

// ListItems returns the playable items of the playlist behind ref.
func (c *Client) ListItems(ctx context.Context, ref string) ([]source.Item, error) {
	ref = strings.TrimSpace(ref)
	if !IsPlaylistURL(ref) {
		return nil, services.Wrap(services.ErrValidation, component, "list items", fmt.Sprintf("not a playlist url: %q", ref), nil)
	}
	playlistID, ok := PlaylistID(ref)
	if !ok {
		return nil, services.Wrap(services.ErrValidation, component, "list items", "url carries no list parameter", nil)
	}
	if IsMix(playlistID) {
		return nil, services.Wrap(services.ErrNotFound, component, "list items",
			"auto-generated mixes cannot be read; save the mix as a playlist first", nil)
	}
	logger := logging.WithContext(ctx, c.logger)

	items, skipped, err := c.playlistItems(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	durations, err := c.durations(ctx, items)
	if err != nil {
		return nil, err
	}

	kept := make([]source.Item, 0, len(items))
	var tooShort, tooLong int
	for _, item := range items {
		item.Duration = durations[item.ID]
		switch {
		case item.Duration > 0 && item.Duration < c.minDuration:
			tooShort++
			continue
		case c.maxDuration > 0 && item.Duration > c.maxDuration:
			tooLong++
			continue
		}
		kept = append(kept, item)
	}

	logger.Info("playlist listed",
		logging.String("playlist_id", playlistID),
		logging.Int("item_count", len(kept)),
		logging.Int("unavailable_count", skipped),
		logging.Int("too_short_count", tooShort),
		logging.Int("too_long_count", tooLong))
	return kept, nil
}

func (c *Client) playlistItems(ctx context.Context, playlistID string) ([]source.Item, int, error) {
	var (
		items   []source.Item
		skipped int
		token   string
	)
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("maxResults", strconv.Itoa(pageSize))
		params.Set("playlistId", playlistID)
		if token != "" {
			params.Set("pageToken", token)
		}
		var payload playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", params, &payload); err != nil {
			return nil, 0, err
		}
		for _, entry := range payload.Items {
			id := strings.TrimSpace(entry.ContentDetails.VideoID)
			title := strings.TrimSpace(entry.Snippet.Title)
			if id == "" || title == "" || title == unavailableDeletedTitle || title == unavailablePrivateTitle {
				skipped++
				continue
			}
			items = append(items, source.Item{
				ID:       id,
				Title:    title,
				Uploader: entry.Snippet.VideoOwnerChannelTitle,
				URL:      WatchURL(id),
			})
		}
		if payload.NextPageToken == "" {
			return items, skipped, nil
		}
		token = payload.NextPageToken
	}
	return items, skipped, nil
}

// durations fetches video lengths in batches of pageSize ids. Batches run
// concurrently and write to disjoint result slots.
func (c *Client) durations(ctx context.Context, items []source.Item) (map[string]time.Duration, error) {
	batches := make([][]string, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := min(start+pageSize, len(items))
		ids := make([]string, 0, end-start)
		for _, item := range items[start:end] {
			ids = append(ids, item.ID)
		}
		batches = append(batches, ids)
	}

	results := make([]map[string]time.Duration, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for idx, ids := range batches {
		g.Go(func() error {
			found, err := c.videoDurations(gctx, ids)
			if err != nil {
				return err
			}
			results[idx] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]time.Duration, len(items))
	for _, batch := range results {
		for id, d := range batch {
			merged[id] = d
		}
	}
	return merged, nil
}

func (c *Client) videoDurations(ctx context.Context, ids []string) (map[string]time.Duration, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", strings.Join(ids, ","))
	params.Set("maxResults", strconv.Itoa(pageSize))
	var payload videosResponse
	if err := c.get(ctx, "/videos", params, &payload); err != nil {
		return nil, err
	}
	out := make(map[string]time.Duration, len(payload.Items))
	for _, video := range payload.Items {
		d, err := ParseDuration(video.ContentDetails.Duration)
		if err != nil {
			logging.WarnWithContext(c.logger, "unparseable video duration", "youtube_duration_invalid",
				logging.String("video_id", video.ID),
				logging.String("duration", video.ContentDetails.Duration),
				logging.String(logging.FieldImpact, "duration filter skipped for this item"))
			continue
		}
		out[video.ID] = d
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return services.Wrap(services.ErrTransient, component, "GET "+path,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classify(path, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternal, component, "GET "+path, "decode response", err)
	}
	return nil
}

func classify(path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}
	marker := services.ErrExternal
	switch {
	case resp.StatusCode == http.StatusNotFound:
		marker = services.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		marker = services.ErrAuthorization
	case resp.StatusCode == http.StatusBadRequest:
		marker = services.ErrValidation
	case resp.StatusCode >= 500:
		marker = services.ErrTransient
	}
	return services.Wrap(marker, component, "GET "+path, fmt.Sprintf("youtube returned %d: %s", resp.StatusCode, message), nil)
}
