package config

import "time"

const (
	envPort           = "PORT"
	envPollInterval   = "POLL_INTERVAL"
	envProvider       = "PROVIDER"
	envCORSOrigins    = "CORS_ORIGINS"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envNHLBaseURL     = "NHL_BASE_URL"
	envNHLTimezone    = "NHL_TIMEZONE"
	envNHLRateLimit   = "NHL_RATE_LIMIT"
	envNHLCacheTTL    = "NHL_CACHE_TTL"
	envNHLHTTPTimeout = "NHL_HTTP_TIMEOUT"
	envCacheBackend   = "CACHE_BACKEND"
	envRedisURL       = "REDIS_URL"
	envRivalsBackend  = "RIVALS_BACKEND"
	envRivalsPath     = "RIVALS_PATH"
	envRivalsSQLite   = "RIVALS_SQLITE_PATH"
	envLookbackDays   = "EVENTS_LOOKBACK_DAYS"
	envCurseWorkers   = "CURSE_CONCURRENCY"
	envSnapshotOn     = "SNAPSHOT_ENABLED"
	envSnapshotFolder = "SNAPSHOT_FOLDER"
	envSnapshotKeep   = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotSync   = "SNAPSHOT_SYNC_ENABLED"
	envSnapshotDays   = "SNAPSHOT_SYNC_DAYS"
	envSnapshotRate   = "SNAPSHOT_SYNC_INTERVAL"
	envSnapshotHour   = "SNAPSHOT_DAILY_HOUR"
	envTeamsRefresh   = "SNAPSHOT_TEAMS_REFRESH_DAYS"
	envAdminToken     = "ADMIN_TOKEN"

	defaultPort          = "4000"
	defaultPollInterval  = 2 * Duration(time.Minute)
	defaultProvider      = "nhl"
	defaultCORSOrigins   = "*"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "rival-watch-service"
	defaultNHLBaseURL    = "https://api-web.nhle.com/v1"
	defaultNHLTimezone   = "America/New_York"
	defaultNHLRateLimit  = 5
	defaultNHLCacheTTL   = 60 * Duration(time.Second)
	defaultNHLTimeout    = 10 * Duration(time.Second)
	defaultCacheBackend  = "memory"
	defaultRedisURL      = "redis://localhost:6379/0"
	defaultRivalsBackend = "file"
	defaultRivalsPath    = "data/rivals.json"
	defaultRivalsSQLite  = "data/rivals.db"
	defaultLookbackDays  = 3
	defaultCurseWorkers  = 8

	defaultSnapshotEnabled   = true
	defaultSnapshotFolder    = "data/snapshots"
	defaultSnapshotRetention = 14
	defaultSnapshotSync      = true
	defaultSnapshotDays      = 7
	defaultTeamsRefreshDays  = 7

	// Spacing between backfill days, on top of the provider rate limit.
	defaultSnapshotInterval = 1 * Duration(time.Second)

	// UTC hour for the daily backfill and prune.
	defaultSnapshotDailyHour = 9
)
