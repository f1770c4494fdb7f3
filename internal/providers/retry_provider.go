package providers

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingProvider wraps a DataProvider with retry/backoff behavior and attempt metrics.
type retryingProvider struct {
	inner        DataProvider
	logger       *slog.Logger
	recorder     *metrics.Recorder
	providerName string
	maxAttempts  int
	backoffFn    backoffFunc

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewRetryingProvider wraps the given provider with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingProvider(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, maxAttempts int, backoff time.Duration) DataProvider {
	return NewRetryingProviderWithRNG(inner, logger, recorder, name, nil, maxAttempts, backoff)
}

// NewRetryingProviderWithRNG is NewRetryingProvider with a caller supplied jitter source.
func NewRetryingProviderWithRNG(inner DataProvider, logger *slog.Logger, recorder *metrics.Recorder, name string, rng *rand.Rand, maxAttempts int, backoff time.Duration) DataProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	if name == "" {
		name = "provider"
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		recorder:     recorder,
		providerName: name,
		maxAttempts:  maxAttempts,
		rng:          rng,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingProvider) FetchClubSchedule(ctx context.Context, team string) ([]games.Game, error) {
	return withRetry(ctx, r, "schedule", func(ctx context.Context) ([]games.Game, error) {
		return r.inner.FetchClubSchedule(ctx, team)
	})
}

func (r *retryingProvider) FetchScores(ctx context.Context, date string) (games.DayScores, error) {
	return withRetry(ctx, r, "scores", func(ctx context.Context) (games.DayScores, error) {
		return r.inner.FetchScores(ctx, date)
	})
}

func (r *retryingProvider) FetchPlayByPlay(ctx context.Context, gameID int64) (games.PlayByPlay, error) {
	return withRetry(ctx, r, "play_by_play", func(ctx context.Context) (games.PlayByPlay, error) {
		return r.inner.FetchPlayByPlay(ctx, gameID)
	})
}

func (r *retryingProvider) FetchStandings(ctx context.Context) ([]teams.Team, error) {
	return withRetry(ctx, r, "standings", func(ctx context.Context) ([]teams.Team, error) {
		return r.inner.FetchStandings(ctx)
	})
}

func withRetry[T any](ctx context.Context, r *retryingProvider, op string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil || r.inner == nil {
		return zero, ErrProviderUnavailable
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		out, err := call(ctx)
		r.recorder.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if rl, ok := AsRateLimitError(err); ok {
			r.recorder.RecordRateLimit(r.providerName, rl.RetryAfter)
		}
		if attempt == r.maxAttempts || !retryable(err) {
			break
		}

		r.logWarn(ctx, "provider fetch retry", "op", op, "attempt", attempt, "max_attempts", r.maxAttempts, "err", err)

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(r.delay(attempt, err)):
		}
	}

	r.logWarn(ctx, "provider fetch failed", "op", op, "attempts", r.maxAttempts, "err", lastErr)
	return zero, lastErr
}

// delay honors Retry-After on rate limits; otherwise it is the backoff plus up to 50% jitter.
func (r *retryingProvider) delay(attempt int, err error) time.Duration {
	if rl, ok := AsRateLimitError(err); ok && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	base := r.backoffFn(attempt)
	if base <= 0 {
		return 0
	}
	r.rngMu.Lock()
	jitter := time.Duration(r.rng.Int63n(int64(base)/2 + 1))
	r.rngMu.Unlock()
	return base + jitter
}

// retryable is false for client errors other than 429; retrying a 404 never helps.
func retryable(err error) bool {
	st, ok := AsStatusError(err)
	if !ok {
		return true
	}
	return st.StatusCode == http.StatusTooManyRequests || st.StatusCode >= 500
}

func (r *retryingProvider) logWarn(ctx context.Context, msg string, args ...any) {
	logWithProvider(ctx, logging.FromContext(ctx, r.logger), slog.LevelWarn, r.providerName, msg, args...)
}
