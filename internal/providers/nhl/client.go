package nhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rivalwatch/rival-watch-service/internal/cache"
	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
)

// Config controls how the NHL client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Recorder   *metrics.Recorder
	Logger     *slog.Logger

	// Cache holds raw response bodies for CacheTTL. Nil disables caching.
	Cache    cache.Store
	CacheTTL time.Duration
}

// Client fetches data from the NHL web API and maps it to domain models.
// Identical concurrent requests share one upstream call.
type Client struct {
	baseURL    string
	httpClient httpDoer
	cache      cache.Store
	ttl        time.Duration
	metrics    *metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
	group      singleflight.Group
}

// NewClient constructs an NHL client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		cache:      cfg.Cache,
		ttl:        resolveTTL(cfg.CacheTTL),
		metrics:    cfg.Recorder,
		logger:     cfg.Logger,
		now:        time.Now,
	}
}

// FetchClubSchedule retrieves team's full season schedule.
func (c *Client) FetchClubSchedule(ctx context.Context, team string) ([]games.Game, error) {
	var payload scheduleResponse
	if err := c.getJSON(ctx, "club-schedule-season/"+url.PathEscape(team)+"/now", &payload); err != nil {
		return nil, err
	}
	return mapGames(payload.Games), nil
}

// FetchScores retrieves the score summary for a YYYY-MM-DD date.
func (c *Client) FetchScores(ctx context.Context, date string) (games.DayScores, error) {
	var payload scoreResponse
	if err := c.getJSON(ctx, "score/"+url.PathEscape(date), &payload); err != nil {
		return games.DayScores{}, err
	}
	return games.DayScores{Date: date, Games: mapGames(payload.Games)}, nil
}

// FetchPlayByPlay retrieves the plays of one game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID int64) (games.PlayByPlay, error) {
	var payload playByPlayResponse
	if err := c.getJSON(ctx, fmt.Sprintf("gamecenter/%d/play-by-play", gameID), &payload); err != nil {
		return games.PlayByPlay{}, err
	}
	return mapPlayByPlay(gameID, payload), nil
}

// FetchStandings retrieves the current standings as teams, in upstream order.
func (c *Client) FetchStandings(ctx context.Context) ([]teams.Team, error) {
	var payload standingsResponse
	if err := c.getJSON(ctx, "standings/now", &payload); err != nil {
		return nil, err
	}
	return mapStandings(payload), nil
}

// Fetch returns the raw body for path, relative to the base URL and optionally carrying a
// query string. Successful bodies are cached for the configured TTL.
func (c *Client) Fetch(ctx context.Context, path string) ([]byte, error) {
	path = strings.TrimPrefix(path, "/")
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, c.logger), "cache read failed", logging.FieldPath, path, "err", err)
		}
		c.metrics.RecordCacheLookup(ok)
		if ok {
			logging.Debug(logging.FromContext(ctx, c.logger), "upstream cache hit", logging.FieldPath, path)
			return body, nil
		}
	}

	ch := c.group.DoChan(path, func() (any, error) {
		return c.fetchShared(context.WithoutCancel(ctx), path)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// fetchShared runs once per in-flight path, detached from the caller that started it.
func (c *Client) fetchShared(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, sharedFetchTimeout)
	defer cancel()

	body, err := c.fetchUpstream(ctx, path)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body, c.ttl); err != nil {
			logging.Warn(logging.FromContext(ctx, c.logger), "cache write failed", logging.FieldPath, path, "err", err)
		}
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err := c.Fetch(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("nhl: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetchUpstream(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nhl: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "nhl rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return nil, &providers.StatusError{Provider: providerName, StatusCode: resp.StatusCode, Path: path}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("nhl: read %s: %w", path, err)
	}
	if len(body) > maxBodyBytes {
		return nil, errors.New("nhl: response body too large")
	}
	return body, nil
}
