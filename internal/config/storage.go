package config

import "strings"

// StorageConfig selects the backends for the response cache and the rival set.
type StorageConfig struct {
	CacheBackend     string // memory or redis
	RedisURL         string
	RivalsBackend    string // file, redis or sqlite
	RivalsPath       string
	RivalsSQLitePath string
}

func loadStorage() StorageConfig {
	return StorageConfig{
		CacheBackend:     strings.ToLower(envOrDefault(envCacheBackend, defaultCacheBackend)),
		RedisURL:         envOrDefault(envRedisURL, defaultRedisURL),
		RivalsBackend:    strings.ToLower(envOrDefault(envRivalsBackend, defaultRivalsBackend)),
		RivalsPath:       envOrDefault(envRivalsPath, defaultRivalsPath),
		RivalsSQLitePath: envOrDefault(envRivalsSQLite, defaultRivalsSQLite),
	}
}
