package transfer

import (
	"context"
	"log/slog"

	"mixport/internal/catalog"
	"mixport/internal/catalog/spotify"
	"mixport/internal/config"
	"mixport/internal/logging"
	"mixport/internal/notifications"
	"mixport/internal/searchcache"
	"mixport/internal/source/youtube"
)

// Clients are the production collaborators built from configuration.
type Clients struct {
	YouTube *youtube.Client
	Spotify *spotify.Client
	Cache   *searchcache.Cache
}

// Deps adapts the clients to the runner contracts. Searches go through the
// cache when it is open.
func (c *Clients) Deps(cfg *config.Config) Deps {
	var searcher catalog.Searcher = c.Spotify
	if c.Cache != nil {
		searcher = c.Cache.Wrap(c.Spotify, cfg.SearchCacheTTL())
	}
	return Deps{
		Lister:   c.YouTube,
		Searcher: searcher,
		Mutator:  c.Spotify,
		Notifier: notifications.NewService(cfg),
	}
}

// Close releases the search cache.
func (c *Clients) Close() error {
	if c == nil || c.Cache == nil {
		return nil
	}
	return c.Cache.Close()
}

// NewClients builds the YouTube and Spotify clients and opens the search
// cache when enabled.
func NewClients(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Clients, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	yt, err := youtube.New(cfg.YouTube.APIKey, cfg.YouTube.BaseURL,
		youtube.WithConcurrency(cfg.YouTube.FetchConcurrency),
		youtube.WithDurationBounds(cfg.MinDuration(), cfg.MaxDuration()),
		youtube.WithLogger(logging.NewComponentLogger(logger, "youtube")))
	if err != nil {
		return nil, err
	}
	sp, err := NewSpotifyClient(cfg)
	if err != nil {
		return nil, err
	}

	clients := &Clients{YouTube: yt, Spotify: sp}
	if cfg.SearchCache.Enabled {
		cache, err := OpenSearchCache(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		clients.Cache = cache
	}
	return clients, nil
}

// NewSpotifyClient builds the catalog client from the [spotify] section.
func NewSpotifyClient(cfg *config.Config) (*spotify.Client, error) {
	return spotify.New(spotify.Credentials{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RefreshToken: cfg.Spotify.RefreshToken,
	}, cfg.Spotify.BaseURL, cfg.Spotify.AccountsURL, spotify.WithMarket(cfg.Spotify.Market))
}

// OpenSearchCache opens the sqlite search cache at the configured path.
func OpenSearchCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*searchcache.Cache, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	return searchcache.Open(ctx, cfg.SearchCachePath(),
		searchcache.WithLogger(logging.NewComponentLogger(logger, "searchcache")))
}

// NewFromConfig builds a Runner wired to the production clients. The
// returned Clients must be closed by the caller.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, *Clients, error) {
	clients, err := NewClients(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	runner, err := New(cfg, clients.Deps(cfg), append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		_ = clients.Close()
		return nil, nil, err
	}
	return runner, clients, nil
}
