package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"mixport/internal/catalog"
	"mixport/internal/services"
)

const (
	// PlaylistURLPrefix is the public web location of a playlist id.
	PlaylistURLPrefix = "https://open.spotify.com/playlist/"

	maxRetries        = 3
	defaultRetryDelay = time.Second
	maxRetryDelay     = 30 * time.Second
	tokenSafetyMargin = 60 * time.Second
	playlistPageSize  = 50
	maxSearchLimit    = 50
	errorBodyLimit    = 512
	component         = "spotify"
)

// Client talks to the Spotify Web API on behalf of a single user.
type Client struct {
	clientID     string
	clientSecret string
	refreshToken string
	baseURL      string
	accountsURL  string
	market       string
	httpClient   *http.Client
	retryDelay   time.Duration
	now          func() time.Time

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
	userID      string
}

var (
	_ catalog.Searcher = (*Client)(nil)
	_ catalog.Mutator  = (*Client)(nil)
)

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

// WithMarket restricts search results to tracks playable in an ISO country.
func WithMarket(market string) Option {
	return func(c *Client) {
		c.market = strings.ToUpper(strings.TrimSpace(market))
	}
}

// WithRetryDelay overrides the first backoff delay. Later attempts double it.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.retryDelay = delay
		}
	}
}

// WithClock overrides the time source used for token expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// Credentials identifies the application and the authorizing user.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// New creates a Spotify client.
func New(creds Credentials, baseURL, accountsURL string, opts ...Option) (*Client, error) {
	creds.ClientID = strings.TrimSpace(creds.ClientID)
	creds.ClientSecret = strings.TrimSpace(creds.ClientSecret)
	creds.RefreshToken = strings.TrimSpace(creds.RefreshToken)
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "client id and secret required", nil)
	}
	if creds.RefreshToken == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "refresh token required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	accountsURL = strings.TrimSpace(accountsURL)
	if baseURL == "" || accountsURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, component, "new client", "api and accounts urls required", nil)
	}
	client := &Client{
		clientID:     creds.ClientID,
		clientSecret: creds.ClientSecret,
		refreshToken: creds.RefreshToken,
		baseURL:      strings.TrimRight(baseURL, "/"),
		accountsURL:  strings.TrimRight(accountsURL, "/"),
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		retryDelay:   defaultRetryDelay,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CollectionURL returns the public web URL of a playlist.
func (c *Client) CollectionURL(id string) string {
	return PlaylistURLPrefix + id
}

// apiError carries a non-success response from the Web API.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("spotify returned %d", e.Status)
	}
	return fmt.Sprintf("spotify returned %d: %s", e.Status, e.Message)
}

// do issues an authenticated API request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		endpoint = c.baseURL + path
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = encoded
	}

	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	build := func() (*http.Request, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	resp, err := c.doWithRetry(ctx, build)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(method, path, decodeAPIError(resp))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternal, component, method+" "+path, "decode response", err)
	}
	return nil
}

// doWithRetry executes a request with exponential backoff on network
// errors, 5xx responses, and 429 responses. 429 honours Retry-After.
func (c *Client) doWithRetry(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, maxRetryDelay)
		}

		req, err := build()
		if err != nil {
			return nil, err
		}
		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("execute request (latency=%v): %w", latency, err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if wait, ok := retryAfter(resp.Header.Get("Retry-After")); ok {
				delay = min(wait, maxRetryDelay)
			}
			resp.Body.Close()
			lastErr = &apiError{Status: resp.StatusCode, Message: "rate limited"}
			continue
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = &apiError{Status: resp.StatusCode, Message: fmt.Sprintf("server error (latency=%v)", latency)}
			continue
		}
		return resp, nil
	}

	return nil, services.Wrap(services.ErrTransient, component, "request",
		fmt.Sprintf("failed after %d attempts", maxRetries+1), lastErr)
}

func retryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

func decodeAPIError(resp *http.Response) *apiError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	var envelope struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
		Description string `json:"error_description"`
	}
	apiErr := &apiError{Status: resp.StatusCode}
	if err := json.Unmarshal(data, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
		if apiErr.Message == "" {
			apiErr.Message = envelope.Description
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

func classify(method, path string, err *apiError) error {
	marker := services.ErrExternal
	switch err.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		marker = services.ErrAuthorization
	case http.StatusNotFound:
		marker = services.ErrNotFound
	case http.StatusBadRequest:
		marker = services.ErrValidation
	}
	return services.Wrap(marker, component, method+" "+path, "", err)
}

// StatusCode extracts the HTTP status of a failed API call, or 0.
func StatusCode(err error) int {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
