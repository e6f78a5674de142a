package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.ValidateSettings(); err != nil {
		return err
	}
	return c.ValidateCredentials()
}

// ValidateSettings checks ranges and sizes without requiring credentials.
func (c *Config) ValidateSettings() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validatePlaylist(); err != nil {
		return err
	}
	if err := c.validateYouTube(); err != nil {
		return err
	}
	if c.SearchCache.Enabled && c.SearchCache.TTLHours <= 0 {
		return errors.New("search_cache.ttl_hours must be positive when search_cache.enabled is true")
	}
	return nil
}

// ValidateCredentials ensures the catalog credentials are present.
func (c *Config) ValidateCredentials() error {
	missing := ""
	switch {
	case c.Spotify.ClientID == "":
		missing = "spotify.client_id (or SPOTIFY_CLIENT_ID)"
	case c.Spotify.ClientSecret == "":
		missing = "spotify.client_secret (or SPOTIFY_CLIENT_SECRET)"
	case c.Spotify.RefreshToken == "":
		missing = "spotify.refresh_token (or SPOTIFY_REFRESH_TOKEN)"
	default:
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%s is required. Edit %s (create with 'mixport config init')", missing, defaultPath)
}

func (c *Config) validateMatching() error {
	if c.Matching.RelevanceThreshold < 0 || c.Matching.RelevanceThreshold > 1 {
		return errors.New("matching.relevance_threshold must be between 0 and 1")
	}
	if err := ensurePositiveMap(map[string]int{
		"matching.search_limit":         c.Matching.SearchLimit,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	if c.Matching.MaxSearchQueries < 1 || c.Matching.MaxSearchQueries > maxSearchQueries {
		return fmt.Errorf("matching.max_search_queries must be between 1 and %d", maxSearchQueries)
	}
	return nil
}

func (c *Config) validatePlaylist() error {
	if c.Playlist.BatchSize < 1 || c.Playlist.BatchSize > maxPlaylistBatchSize {
		return fmt.Errorf("playlist.batch_size must be between 1 and %d", maxPlaylistBatchSize)
	}
	if c.Playlist.MaxTracks < 0 {
		return errors.New("playlist.max_tracks must be >= 0")
	}
	return nil
}

func (c *Config) validateYouTube() error {
	if c.YouTube.MinDurationSeconds < 0 {
		return errors.New("youtube.min_duration_seconds must be >= 0")
	}
	if c.YouTube.MaxDurationSeconds < 0 {
		return errors.New("youtube.max_duration_seconds must be >= 0")
	}
	if c.YouTube.MaxDurationSeconds > 0 && c.YouTube.MaxDurationSeconds < c.YouTube.MinDurationSeconds {
		return errors.New("youtube.max_duration_seconds must be greater than youtube.min_duration_seconds")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
