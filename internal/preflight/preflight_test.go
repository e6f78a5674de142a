package preflight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mixport/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckYouTube_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/videos" || r.URL.Query().Get("key") != "good-key" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	result := CheckYouTube(context.Background(), srv.URL, "good-key")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckYouTube_BadKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	result := CheckYouTube(context.Background(), srv.URL, "bad-key")
	if result.Passed || !strings.Contains(result.Detail, "rejected") {
		t.Fatalf("expected rejection, got %+v", result)
	}
}

func TestCheckYouTube_MissingKey(t *testing.T) {
	result := CheckYouTube(context.Background(), "http://localhost", "")
	if result.Passed {
		t.Fatal("expected failure for missing key")
	}
}

func newSpotifyServer(t *testing.T, tokenStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, _ *http.Request) {
		if tokenStatus != http.StatusOK {
			w.WriteHeader(tokenStatus)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Refresh token revoked"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "abc", "expires_in": 3600})
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "user1", "display_name": "DJ Test"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckSpotify_OK(t *testing.T) {
	srv := newSpotifyServer(t, http.StatusOK)
	cfg := testsupport.NewConfig(t, testsupport.WithSpotifyServer(srv.URL))

	result := CheckSpotify(context.Background(), cfg)
	if !result.Passed || result.Detail != "authenticated as DJ Test" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckSpotify_RejectedToken(t *testing.T) {
	srv := newSpotifyServer(t, http.StatusBadRequest)
	cfg := testsupport.NewConfig(t, testsupport.WithSpotifyServer(srv.URL))

	result := CheckSpotify(context.Background(), cfg)
	if result.Passed || !strings.HasPrefix(result.Detail, "auth failed") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckSpotify_MissingCredentials(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Spotify.RefreshToken = ""
	result := CheckSpotify(context.Background(), cfg)
	if result.Passed || result.Detail != "credentials missing" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCheckSearchCache(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSearchCache())
	result := CheckSearchCache(context.Background(), cfg.SearchCachePath())
	if !result.Passed || !strings.HasSuffix(result.Detail, "(0 entries)") {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll(t *testing.T) {
	spotifySrv := newSpotifyServer(t, http.StatusOK)
	youtubeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer youtubeSrv.Close()

	cfg := testsupport.NewConfig(t,
		testsupport.WithSpotifyServer(spotifySrv.URL),
		testsupport.WithYouTubeServer(youtubeSrv.URL),
		testsupport.WithSearchCache(),
	)

	results := RunAll(context.Background(), cfg)
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_SkipsDisabledCache(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Spotify.BaseURL = "http://127.0.0.1:1"
	cfg.Spotify.AccountsURL = "http://127.0.0.1:1"
	cfg.YouTube.APIKey = ""

	results := RunAll(context.Background(), cfg)
	for _, r := range results {
		if r.Name == "Search cache" {
			t.Fatal("search cache should not be checked when disabled")
		}
	}
	if failed := Failed(results); len(failed) != 2 {
		t.Fatalf("expected spotify and youtube failures, got %+v", failed)
	}
}
