package config

const (
	defaultConfigPath          = "~/.config/mixport/config.toml"
	defaultReportDir           = "~/.local/share/mixport/reports"
	defaultLogDir              = "~/.local/share/mixport/logs"
	defaultSpotifyBaseURL      = "https://api.spotify.com/v1"
	defaultSpotifyAccountsURL  = "https://accounts.spotify.com"
	defaultYouTubeBaseURL      = "https://www.googleapis.com/youtube/v3"
	defaultMinDurationSeconds  = 30
	defaultMaxDurationSeconds  = 600
	defaultFetchConcurrency    = 4
	defaultRelevanceThreshold  = 0.3
	defaultSearchLimit         = 5
	defaultMaxSearchQueries    = 5
	defaultRequestDelayMS      = 100
	defaultPlaylistBatchSize   = 100
	defaultSearchCacheTTLHours = 24
	defaultNotifyTimeout       = 10
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	searchCacheFile            = "search_cache.db"
	lockFile                   = "transfer.lock"

	maxPlaylistBatchSize = 100
	maxSearchQueries     = 5
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReportDir: defaultReportDir,
			LogDir:    defaultLogDir,
			CacheDir:  defaultCacheDir(),
		},
		Spotify: Spotify{
			BaseURL:     defaultSpotifyBaseURL,
			AccountsURL: defaultSpotifyAccountsURL,
		},
		YouTube: YouTube{
			BaseURL:            defaultYouTubeBaseURL,
			MinDurationSeconds: defaultMinDurationSeconds,
			MaxDurationSeconds: defaultMaxDurationSeconds,
			FetchConcurrency:   defaultFetchConcurrency,
		},
		Matching: Matching{
			RelevanceThreshold: defaultRelevanceThreshold,
			SearchLimit:        defaultSearchLimit,
			MaxSearchQueries:   defaultMaxSearchQueries,
			RequestDelayMS:     defaultRequestDelayMS,
		},
		Playlist: Playlist{
			Public:    true,
			BatchSize: defaultPlaylistBatchSize,
		},
		SearchCache: SearchCache{
			Enabled:  true,
			TTLHours: defaultSearchCacheTTLHours,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
