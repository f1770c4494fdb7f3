package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/cache"
	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/providers/fixture"
	"github.com/rivalwatch/rival-watch-service/internal/providers/nhl"
)

const (
	providerNHL     = "nhl"
	providerFixture = "fixture"
)

// selectProvider returns the configured upstream, its normalized name and, for the live
// API, the raw client that also serves the proxy. The fixture provider has no raw client.
func selectProvider(cfg config.Config, loc *time.Location, store cache.Store, recorder *metrics.Recorder, logger *slog.Logger) (providers.DataProvider, *nhl.Client, string) {
	switch cfg.Provider {
	case providerNHL, "":
		client := nhl.NewClient(nhl.Config{
			BaseURL:    cfg.NHL.BaseURL,
			HTTPClient: &http.Client{Timeout: cfg.NHL.HTTPTimeout},
			Cache:      store,
			CacheTTL:   cfg.NHL.CacheTTL,
			Recorder:   recorder,
			Logger:     logger,
		})
		return client, client, providerNHL
	case providerFixture:
		return fixture.New(loc), nil, providerFixture
	default:
		logging.Warn(logger, "unknown provider, falling back to nhl", "provider", cfg.Provider)
		return selectProvider(config.Config{NHL: cfg.NHL}, loc, store, recorder, logger)
	}
}
