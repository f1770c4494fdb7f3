package config

// NHLConfig controls how we talk to the NHL web API.
type NHLConfig struct {
	BaseURL     string
	Timezone    string
	RateLimit   float64 // requests per second
	CacheTTL    Duration
	HTTPTimeout Duration
}

func loadNHL() NHLConfig {
	return NHLConfig{
		BaseURL:     envOrDefault(envNHLBaseURL, defaultNHLBaseURL),
		Timezone:    envOrDefault(envNHLTimezone, defaultNHLTimezone),
		RateLimit:   float64(intEnvOrDefault(envNHLRateLimit, defaultNHLRateLimit)),
		CacheTTL:    durationEnvOrDefault(envNHLCacheTTL, defaultNHLCacheTTL),
		HTTPTimeout: durationEnvOrDefault(envNHLHTTPTimeout, defaultNHLTimeout),
	}
}
