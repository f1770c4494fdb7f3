package server

import (
	"log/slog"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/cache"
	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/providers/nhl"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
	loc     *time.Location
	cache   cache.Store
}

func newProviderFactory(logger *slog.Logger, recorder *metrics.Recorder, loc *time.Location, store cache.Store) providerFactory {
	return providerFactory{logger: logger, metrics: recorder, loc: loc, cache: store}
}

// build returns the decorated provider and the raw NHL client, which is nil in fixture mode.
func (f providerFactory) build(cfg config.Config) (providers.DataProvider, *nhl.Client) {
	base, client, name := selectProvider(cfg, f.loc, f.cache, f.metrics, f.logger)
	return f.wrap(base, name, cfg.NHL.RateLimit), client
}

// wrap applies the shared limiter first so retries also wait for a token.
func (f providerFactory) wrap(base providers.DataProvider, name string, perSecond float64) providers.DataProvider {
	limited := providers.NewRateLimitedProvider(base, perSecond, f.logger)
	return providers.NewRetryingProvider(limited, f.logger, f.metrics, name, 0, 0)
}
