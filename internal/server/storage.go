package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rivalwatch/rival-watch-service/internal/cache"
	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
	backendFile   = "file"
	backendSQLite = "sqlite"

	cachePrefix   = "rival-watch:nhl:"
	sweepInterval = time.Minute
)

// storage holds the cache and rival store plus whatever must be closed on shutdown.
type storage struct {
	cache   cache.Store
	memory  *cache.MemoryStore // set when the cache lives in process and needs sweeping
	rivals  rivals.Store
	closers []func() error
}

func buildStorage(cfg config.Config, logger *slog.Logger) storage {
	var st storage

	var client *redis.Client
	if cfg.Storage.CacheBackend == backendRedis || cfg.Storage.RivalsBackend == backendRedis {
		client = newRedisClient(cfg.Storage.RedisURL, logger)
		if client != nil {
			st.closers = append(st.closers, client.Close)
		}
	}

	switch {
	case cfg.Storage.CacheBackend == backendRedis && client != nil:
		st.cache = cache.NewRedisStore(client, cachePrefix)
	default:
		if cfg.Storage.CacheBackend != backendMemory && cfg.Storage.CacheBackend != "" && cfg.Storage.CacheBackend != backendRedis {
			logging.Warn(logger, "unknown cache backend, using memory", "backend", cfg.Storage.CacheBackend)
		}
		st.memory = cache.NewMemoryStore()
		st.cache = st.memory
	}

	st.rivals = buildRivalStore(cfg.Storage, client, logger, &st.closers)
	return st
}

func newRedisClient(url string, logger *slog.Logger) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logging.Warn(logger, "invalid redis url, falling back to local storage", "err", err)
		return nil
	}
	return redis.NewClient(opts)
}

func buildRivalStore(cfg config.StorageConfig, client *redis.Client, logger *slog.Logger, closers *[]func() error) rivals.Store {
	switch cfg.RivalsBackend {
	case backendRedis:
		if client != nil {
			return rivals.NewRedisStore(client, rivals.Key)
		}
	case backendSQLite:
		store, err := rivals.OpenSQLiteStore(cfg.RivalsSQLitePath)
		if err == nil {
			*closers = append(*closers, store.Close)
			return store
		}
		logging.Warn(logger, "sqlite rivals store unavailable, using file", "path", cfg.RivalsSQLitePath, "err", err)
	case backendFile, "":
	default:
		logging.Warn(logger, "unknown rivals backend, using file", "backend", cfg.RivalsBackend)
	}
	return rivals.NewFileStore(cfg.RivalsPath)
}

// sweepCache evicts expired entries from the in-process cache until ctx is done.
func sweepCache(ctx context.Context, store *cache.MemoryStore, interval time.Duration, logger *slog.Logger) {
	if store == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logging.Info(logger, "cache sweep", logging.FieldCount, n)
			}
		}
	}
}
