package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"mixport/internal/catalog/spotify"
	"mixport/internal/config"
	"mixport/internal/searchcache"
	"mixport/internal/services"
)

// probeVideoID is a long-lived public video used to validate API keys.
const probeVideoID = "dQw4w9WgXcQ"

// CheckSpotify verifies the refresh token by exchanging it and fetching the
// current user. It uses a 30-second timeout.
func CheckSpotify(ctx context.Context, cfg *config.Config) Result {
	const name = "Spotify"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	client, err := spotify.New(spotify.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
	}, cfg.Spotify.BaseURL, cfg.Spotify.AccountsURL, spotify.WithRetryDelay(250*time.Millisecond))
	if err != nil {
		return Result{Name: name, Detail: "credentials missing"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	id, display, err := client.Authenticate(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if display == "" {
		display = id
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("authenticated as %s", display)}
}

// CheckYouTube verifies the Data API key with a single video lookup.
func CheckYouTube(ctx context.Context, baseURL, apiKey string) Result {
	const name = "YouTube"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing url"}
	}
	if strings.TrimSpace(apiKey) == "" {
		return Result{Name: name, Detail: "missing api key"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	params := url.Values{}
	params.Set("part", "id")
	params.Set("id", probeVideoID)
	params.Set("key", strings.TrimSpace(apiKey))

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/videos?"+params.Encode(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("key check failed (%v)", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return Result{Name: name, Passed: true, Detail: "API key accepted"}
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return Result{Name: name, Detail: fmt.Sprintf("API key rejected (%d)", resp.StatusCode)}
	default:
		return Result{Name: name, Detail: fmt.Sprintf("key check failed (%d)", resp.StatusCode)}
	}
}

// CheckSearchCache opens the search cache and reports its size.
func CheckSearchCache(ctx context.Context, path string) Result {
	const name = "Search cache"

	cache, err := searchcache.Open(ctx, path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer cache.Close()

	stats, err := cache.Stats(ctx, 0)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s entries)", path, humanize.Comma(int64(stats.Entries)))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (service unreachable)"
	}
	if errors.Is(err, services.ErrAuthorization) {
		return "auth failed (" + err.Error() + ")"
	}
	return err.Error()
}
