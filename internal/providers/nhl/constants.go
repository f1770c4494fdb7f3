package nhl

import "time"

const (
	providerName       = "nhl"
	defaultBaseURL     = "https://api-web.nhle.com/v1"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 60 * time.Second
	sharedFetchTimeout = 30 * time.Second
	maxBodyBytes       = 16 << 20
)
