package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mixport/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	ReportDir string `toml:"report_dir"`
	LogDir    string `toml:"log_dir"`
	CacheDir  string `toml:"cache_dir"`
}

// Spotify contains credentials and endpoints for the Spotify Web API.
type Spotify struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RefreshToken string `toml:"refresh_token"`
	BaseURL      string `toml:"base_url"`
	AccountsURL  string `toml:"accounts_url"`
	Market       string `toml:"market"`
}

// YouTube contains configuration for the YouTube Data API.
type YouTube struct {
	APIKey             string `toml:"api_key"`
	BaseURL            string `toml:"base_url"`
	MinDurationSeconds int    `toml:"min_duration_seconds"`
	// MaxDurationSeconds drops long uploads (full mixes, livestreams). 0 disables the cap.
	MaxDurationSeconds int `toml:"max_duration_seconds"`
	FetchConcurrency   int `toml:"fetch_concurrency"`
}

// Matching contains the knobs of the title to track matcher.
type Matching struct {
	RelevanceThreshold float64 `toml:"relevance_threshold"`
	SearchLimit        int     `toml:"search_limit"`
	MaxSearchQueries   int     `toml:"max_search_queries"`
	RequestDelayMS     int     `toml:"request_delay_ms"`
}

// Playlist contains defaults for created playlists.
type Playlist struct {
	Public    bool `toml:"public"`
	BatchSize int  `toml:"batch_size"`
	MaxTracks int  `toml:"max_tracks"`
}

// SearchCache contains configuration for the persistent search result cache.
type SearchCache struct {
	Enabled  bool `toml:"enabled"`
	TTLHours int  `toml:"ttl_hours"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for mixport.
//
// Configuration sections by subsystem:
//   - Paths: report, log, and cache directories
//   - Spotify: catalog credentials and endpoints
//   - YouTube: playlist listing and duration filtering
//   - Matching: relevance threshold and search fan-out
//   - Playlist: visibility and batching of created playlists
//   - SearchCache: sqlite cache of catalog search results
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Spotify       Spotify       `toml:"spotify"`
	YouTube       YouTube       `toml:"youtube"`
	Matching      Matching      `toml:"matching"`
	Playlist      Playlist      `toml:"playlist"`
	SearchCache   SearchCache   `toml:"search_cache"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := load(path)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// LoadUnvalidated reads and normalizes configuration without the credential
// and range checks. Commands that only inspect local state use it.
func LoadUnvalidated(path string) (*Config, string, bool, error) {
	return load(path)
}

func load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mixport.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the report, log and cache directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.ReportDir, c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the file guarding playlist creation against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.CacheDir, lockFile)
}

// SearchCachePath returns the sqlite file backing the search cache.
func (c *Config) SearchCachePath() string {
	return filepath.Join(c.Paths.CacheDir, searchCacheFile)
}

// SearchCacheTTL returns how long cached search results stay fresh.
func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCache.TTLHours) * time.Hour
}

// RequestDelay returns the pause applied between catalog searches.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Matching.RequestDelayMS) * time.Millisecond
}

// MinDuration returns the shortest source item kept in a listing.
func (c *Config) MinDuration() time.Duration {
	return time.Duration(c.YouTube.MinDurationSeconds) * time.Second
}

// MaxDuration returns the longest source item kept in a listing, or 0 when unbounded.
func (c *Config) MaxDuration() time.Duration {
	return time.Duration(c.YouTube.MaxDurationSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "mixport")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/mixport"
	}
	return filepath.Join(home, ".cache", "mixport")
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// ErrConfigExists is returned by CreateSample when the target exists and
// overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// CreateSample writes the sample configuration to path with owner-only
// permissions, since the file is meant to hold credentials.
func CreateSample(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w at %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Redacted returns a copy of the config with credentials masked for display.
func (c Config) Redacted() Config {
	c.Spotify.ClientID = mask(c.Spotify.ClientID)
	c.Spotify.ClientSecret = mask(c.Spotify.ClientSecret)
	c.Spotify.RefreshToken = mask(c.Spotify.RefreshToken)
	c.YouTube.APIKey = mask(c.YouTube.APIKey)
	return c
}

// Encode renders the config as TOML.
func (c Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func mask(secret string) string {
	switch n := len(secret); {
	case n == 0:
		return ""
	case n <= 8:
		return "********"
	default:
		return secret[:4] + "…" + secret[n-2:]
	}
}
