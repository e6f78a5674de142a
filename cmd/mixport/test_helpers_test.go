package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mixport/internal/config"
	"mixport/internal/testsupport"
)

// fakePlaylists maps playlist ids to video titles.
var fakePlaylists = map[string][]string{
	"PLgood": {
		"Rema - Calm Down (Official Video)",
		"Burna Boy - Last Last [Official Music Video]",
		"Random Vlog Footage",
	},
	"PLweak": {
		"Rema - Calm Down (Official Video)",
		"Cooking Stream",
		"Random Vlog Footage",
	},
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string

	mu       sync.Mutex
	created  []map[string]any
	added    [][]string
	searches int
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()
	env := &cliTestEnv{}

	youtube := httptest.NewServer(env.youtubeMux(t))
	t.Cleanup(youtube.Close)
	spotify := httptest.NewServer(env.spotifyMux())
	t.Cleanup(spotify.Close)

	base := []testsupport.ConfigOption{
		testsupport.WithSpotifyServer(spotify.URL),
		testsupport.WithYouTubeServer(youtube.URL),
	}
	env.cfg = testsupport.NewConfig(t, append(base, opts...)...)
	env.configPath = filepath.Join(testsupport.BaseDir(env.cfg), "config.toml")
	writeTestConfig(t, env.configPath, env.cfg)
	return env
}

func (env *cliTestEnv) youtubeMux(t *testing.T) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /playlistItems", func(w http.ResponseWriter, r *http.Request) {
		list, ok := fakePlaylists[r.URL.Query().Get("playlistId")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"playlist not found"}}`))
			return
		}
		items := make([]map[string]any, 0, len(list))
		for i, title := range list {
			items = append(items, map[string]any{
				"snippet":        map[string]any{"title": title, "videoOwnerChannelTitle": "uploader"},
				"contentDetails": map[string]any{"videoId": fmt.Sprintf("v%d", i+1)},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	mux.HandleFunc("GET /videos", func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		items := make([]map[string]any, 0, len(ids))
		for _, id := range ids {
			if id == "" {
				continue
			}
			items = append(items, map[string]any{"id": id, "contentDetails": map[string]any{"duration": "PT3M20S"}})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
	})
	return mux
}

func (env *cliTestEnv) spotifyMux() *http.ServeMux {
	tracks := map[string]map[string]any{
		"calm down": {"id": "t1", "name": "Calm Down", "uri": "spotify:track:t1", "popularity": 100,
			"artists": []map[string]any{{"id": "a1", "name": "Rema"}}, "album": map[string]any{"name": "Rave & Roses"}},
		"last last": {"id": "t2", "name": "Last Last", "uri": "spotify:track:t2", "popularity": 100,
			"artists": []map[string]any{{"id": "a2", "name": "Burna Boy"}}, "album": map[string]any{"name": "Love, Damini"}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/token", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "token", "expires_in": 3600})
	})
	mux.HandleFunc("GET /me", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "u1", "display_name": "Tester"})
	})
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		env.mu.Lock()
		env.searches++
		env.mu.Unlock()
		q := strings.ToLower(r.URL.Query().Get("q"))
		items := []map[string]any{}
		for key, track := range tracks {
			if strings.Contains(q, key) {
				items = append(items, track)
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": items, "total": len(items)}})
	})
	mux.HandleFunc("GET /me/playlists", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{{"id": "old", "name": "Existing Mix"}}})
	})
	mux.HandleFunc("POST /users/u1/playlists", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		env.mu.Lock()
		env.created = append(env.created, body)
		env.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "p1", "name": body["name"]})
	})
	mux.HandleFunc("POST /playlists/p1/tracks", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			URIs []string `json:"uris"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		env.mu.Lock()
		env.added = append(env.added, body.URIs)
		env.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"snapshot_id":"s1"}`))
	})
	return mux
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func playlistURL(id string) string {
	return "https://www.youtube.com/playlist?list=" + id
}
