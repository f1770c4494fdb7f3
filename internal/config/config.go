package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	CORSOrigins  []string
	NHL          NHLConfig
	Storage      StorageConfig
	Events       EventsConfig
	Snapshots    SnapshotSyncConfig
	Metrics      MetricsConfig
}

// EventsConfig sizes the feed window and the curse fan-out.
type EventsConfig struct {
	LookbackDays     int
	CurseConcurrency int
}

// Load reads configuration from environment variables with sensible defaults. A .env file
// in the working directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		CORSOrigins:  listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		NHL:          loadNHL(),
		Storage:      loadStorage(),
		Events: EventsConfig{
			LookbackDays:     intEnvOrDefault(envLookbackDays, defaultLookbackDays),
			CurseConcurrency: intEnvOrDefault(envCurseWorkers, defaultCurseWorkers),
		},
		Snapshots: loadSnapshotSync(),
		Metrics:   loadMetrics(),
	}
}
