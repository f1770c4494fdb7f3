package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when a decorator has nothing to delegate to.
var ErrProviderUnavailable = errors.New("provider unavailable")

// StatusError captures a non-2xx upstream response.
type StatusError struct {
	Provider   string
	StatusCode int
	Path       string
}

func (e *StatusError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: unexpected status %d for %s", e.Provider, e.StatusCode, e.Path)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var stErr *StatusError
	if errors.As(err, &stErr) {
		return stErr, true
	}
	return nil, false
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}
