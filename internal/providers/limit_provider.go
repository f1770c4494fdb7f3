package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
)

const defaultRatePerSecond = 5

// rateLimitedProvider wraps a DataProvider with a token bucket shared by every call.
type rateLimitedProvider struct {
	next    DataProvider
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedProvider returns a DataProvider that allows at most perSecond upstream calls per second.
// Calls block until a token is available or ctx is done.
func NewRateLimitedProvider(next DataProvider, perSecond float64, logger *slog.Logger) DataProvider {
	if perSecond <= 0 {
		perSecond = defaultRatePerSecond
	}
	return &rateLimitedProvider{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
		logger:  logger,
	}
}

func (p *rateLimitedProvider) FetchClubSchedule(ctx context.Context, team string) ([]games.Game, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchClubSchedule(ctx, team)
}

func (p *rateLimitedProvider) FetchScores(ctx context.Context, date string) (games.DayScores, error) {
	if err := p.wait(ctx); err != nil {
		return games.DayScores{}, err
	}
	return p.next.FetchScores(ctx, date)
}

func (p *rateLimitedProvider) FetchPlayByPlay(ctx context.Context, gameID int64) (games.PlayByPlay, error) {
	if err := p.wait(ctx); err != nil {
		return games.PlayByPlay{}, err
	}
	return p.next.FetchPlayByPlay(ctx, gameID)
}

func (p *rateLimitedProvider) FetchStandings(ctx context.Context) ([]teams.Team, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.next.FetchStandings(ctx)
}

func (p *rateLimitedProvider) wait(ctx context.Context) error {
	if p == nil || p.next == nil {
		if p != nil {
			logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		}
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "rate-limited fetch canceled", "err", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
