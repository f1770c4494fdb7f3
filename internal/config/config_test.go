package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval %s, got %s", defaultPollInterval, cfg.PollInterval)
	}
	if cfg.Provider != defaultProvider {
		t.Fatalf("expected default provider %s, got %s", defaultProvider, cfg.Provider)
	}
	if cfg.NHL.BaseURL != defaultNHLBaseURL || cfg.NHL.Timezone != defaultNHLTimezone {
		t.Fatalf("unexpected nhl defaults %+v", cfg.NHL)
	}
	if cfg.NHL.RateLimit != defaultNHLRateLimit || cfg.NHL.CacheTTL != time.Minute || cfg.NHL.HTTPTimeout != 10*time.Second {
		t.Fatalf("unexpected nhl limits %+v", cfg.NHL)
	}
	if cfg.Storage.CacheBackend != "memory" || cfg.Storage.RivalsBackend != "file" {
		t.Fatalf("unexpected storage defaults %+v", cfg.Storage)
	}
	if cfg.Events.LookbackDays != 3 || cfg.Events.CurseConcurrency != 8 {
		t.Fatalf("unexpected events defaults %+v", cfg.Events)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard cors origin, got %v", cfg.CORSOrigins)
	}
	if !cfg.Snapshots.Enabled || cfg.Snapshots.RetentionDays != defaultSnapshotRetention || cfg.Snapshots.SnapshotFolder != defaultSnapshotFolder {
		t.Fatalf("unexpected snapshot defaults %+v", cfg.Snapshots)
	}
	if cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("expected service name %s, got %s", defaultServiceName, cfg.Metrics.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envPollInterval, "45s")
	t.Setenv(envProvider, "fixture")
	t.Setenv(envNHLBaseURL, "http://example.com/v1")
	t.Setenv(envNHLTimezone, "America/Toronto")
	t.Setenv(envNHLRateLimit, "2")
	t.Setenv(envCacheBackend, "REDIS")
	t.Setenv(envRivalsBackend, "sqlite")
	t.Setenv(envRivalsSQLite, "/tmp/r.db")
	t.Setenv(envLookbackDays, "5")
	t.Setenv(envCORSOrigins, "http://a.test, ,http://b.test")
	t.Setenv(envSnapshotHour, "0")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.PollInterval != 45*time.Second {
		t.Fatalf("expected poll interval 45s, got %s", cfg.PollInterval)
	}
	if cfg.Provider != "fixture" {
		t.Fatalf("expected provider fixture, got %s", cfg.Provider)
	}
	if cfg.NHL.BaseURL != "http://example.com/v1" || cfg.NHL.Timezone != "America/Toronto" || cfg.NHL.RateLimit != 2 {
		t.Fatalf("unexpected nhl overrides %+v", cfg.NHL)
	}
	if cfg.Storage.CacheBackend != "redis" || cfg.Storage.RivalsBackend != "sqlite" || cfg.Storage.RivalsSQLitePath != "/tmp/r.db" {
		t.Fatalf("unexpected storage overrides %+v", cfg.Storage)
	}
	if cfg.Events.LookbackDays != 5 {
		t.Fatalf("expected lookback 5, got %d", cfg.Events.LookbackDays)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.Snapshots.DailyHourUTC != 0 {
		t.Fatalf("expected hour 0 to be accepted, got %d", cfg.Snapshots.DailyHourUTC)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RIVALS_PATH=from-dotenv.json\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Cleanup(func() { _ = os.Unsetenv(envRivalsPath) })

	cfg := Load()

	if cfg.Storage.RivalsPath != "from-dotenv.json" {
		t.Fatalf("expected rivals path from .env, got %s", cfg.Storage.RivalsPath)
	}
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv(envPollInterval, "not-a-duration")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on invalid value, got %s", cfg.PollInterval)
	}
}

func TestLoadNonPositiveValuesFallBack(t *testing.T) {
	t.Setenv(envPollInterval, "0s")
	t.Setenv(envLookbackDays, "-1")
	t.Setenv(envSnapshotHour, "24")

	cfg := Load()

	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("expected default poll interval on non-positive value, got %s", cfg.PollInterval)
	}
	if cfg.Events.LookbackDays != defaultLookbackDays {
		t.Fatalf("expected default lookback, got %d", cfg.Events.LookbackDays)
	}
	if cfg.Snapshots.DailyHourUTC != defaultSnapshotDailyHour {
		t.Fatalf("expected default hour, got %d", cfg.Snapshots.DailyHourUTC)
	}
}
