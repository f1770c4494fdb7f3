package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/server"
)

const (
	serviceName = "rival-watch-service"
	appVersion  = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	cfg := config.Load()
	logger := newLogger()
	logger.Info("config loaded",
		slog.String("provider", cfg.Provider),
		slog.String("port", cfg.Port),
		slog.String("rivals_backend", cfg.Storage.RivalsBackend),
		slog.String("cache_backend", cfg.Storage.CacheBackend),
		slog.Bool("snapshots", cfg.Snapshots.Enabled),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	srv.Run(ctx, stop)
}

func newLogger() *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: serviceName,
		Version: appVersion,
	})
}
