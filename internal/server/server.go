package server

import (
	"context"
	"log/slog"
	"net/http"

	apprivals "github.com/rivalwatch/rival-watch-service/internal/app/rivals"
	appteams "github.com/rivalwatch/rival-watch-service/internal/app/teams"
	"github.com/rivalwatch/rival-watch-service/internal/cache"
	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/curses"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	httpserver "github.com/rivalwatch/rival-watch-service/internal/http"
	"github.com/rivalwatch/rival-watch-service/internal/http/handlers"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/poller"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/providers/nhl"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
	"github.com/rivalwatch/rival-watch-service/internal/store"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	syncer        *snapshots.Syncer
	memoryCache   *cache.MemoryStore
	metricsStop   func(context.Context) error
	closers       []func() error
}

// New constructs a server with the configured provider, storage and background workers.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

// newServerWithProvider wires a caller supplied provider in place of the configured one.
func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	loc := timeutil.ResolveLocation(cfg.NHL.Timezone)
	st := buildStorage(cfg, logger)

	factory := newProviderFactory(logger, recorder, loc, st.cache)
	var client *nhl.Client
	if provider == nil {
		provider, client = factory.build(cfg)
	} else {
		provider = factory.wrap(provider, "custom", cfg.NHL.RateLimit)
	}

	memoryStore := store.NewMemoryStore()
	deriver := events.NewDeriver(provider, provider, logger, recorder, loc, 0)
	engine := curses.NewEngine(provider, logger, recorder, loc, cfg.Events.CurseConcurrency)
	teamSvc := appteams.NewService(provider, memoryStore, logger)
	rivalSvc := apprivals.NewService(st.rivals)
	snaps := buildSnapshots(cfg, deriver, st.rivals, provider, memoryStore, loc, logger)

	var writer poller.SnapshotWriter
	if snaps.writer != nil {
		writer = snaps.writer
	}
	plr := poller.New(deriver, st.rivals, memoryStore, writer, logger, recorder, cfg.PollInterval, cfg.Events.LookbackDays)

	handler := handlers.NewHandler(handlers.Services{
		Deriver:      deriver,
		Feed:         memoryStore,
		Snapshots:    snaps.store,
		Curses:       engine,
		Teams:        teamSvc,
		Rivals:       rivalSvc,
		LookbackDays: cfg.Events.LookbackDays,
		Status:       plr.Status,
	}, logger)

	var fetcher handlers.Fetcher
	if client != nil {
		fetcher = client
	}
	var admin *handlers.AdminHandler
	if cfg.Snapshots.AdminToken != "" && snaps.writer != nil {
		admin = handlers.NewAdminHandler(snaps.writer, deriver, rivalSvc, cfg.Snapshots.AdminToken, loc, logger)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		Handler:     handler,
		Proxy:       handlers.NewProxyHandler(fetcher, logger),
		Admin:       admin,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
		Recorder:    recorder,
	})

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		httpServer:    buildHTTPServer(cfg.Port, router),
		metricsServer: metricsSrv,
		poller:        plr,
		syncer:        snaps.syncer,
		memoryCache:   st.memory,
		metricsStop:   metricsShutdown,
		closers:       st.closers,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(port string, handler http.Handler) httpServer {
	return netHTTPServer{srv: &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}}
}

// Run starts the servers and background workers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}
	if s.memoryCache != nil {
		go sweepCache(ctx, s.memoryCache, sweepInterval, s.logger)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	for _, closeFn := range s.closers {
		if err := closeFn(); err != nil {
			logging.Warn(s.logger, "storage close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
