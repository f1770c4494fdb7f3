package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

const (
	// DefaultLookbackDays covers the last 72 hours.
	DefaultLookbackDays = 3
	defaultConcurrency  = 3
)

// DayResult is the outcome of scanning one date's scores.
type DayResult struct {
	Date   string
	Events []NegativeEvent
	Err    error
}

// Failed reports whether the day's scores could not be fetched.
func (d DayResult) Failed() bool {
	return d.Err != nil
}

// MarshalJSON encodes a per-day summary. The events themselves are carried once, in Feed.Events.
func (d DayResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date       string `json:"date"`
		EventCount int    `json:"eventCount"`
		Failed     bool   `json:"failed"`
	}{
		Date:       d.Date,
		EventCount: len(d.Events),
		Failed:     d.Failed(),
	})
}

// Feed is the merged, sorted negative events for a set of rivals.
type Feed struct {
	Rivals      []string        `json:"rivals"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Events      []NegativeEvent `json:"events"`
	Days        []DayResult     `json:"days"`
	FailedDays  []string        `json:"failedDays"`
}

// Deriver turns daily score summaries into negative events for rivals.
type Deriver struct {
	scores      providers.ScoreProvider
	plays       providers.PlayByPlayProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	loc         *time.Location
	concurrency int
	now         func() time.Time
}

// NewDeriver constructs a Deriver. A nil loc means UTC; concurrency <= 0 uses the default.
func NewDeriver(scores providers.ScoreProvider, plays providers.PlayByPlayProvider, logger *slog.Logger, recorder *metrics.Recorder, loc *time.Location, concurrency int) *Deriver {
	if loc == nil {
		loc = time.UTC
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Deriver{
		scores:      scores,
		plays:       plays,
		logger:      logger,
		metrics:     recorder,
		loc:         loc,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// FetchNegativeEvents returns the sorted negative events for rivals over the last days days.
func (d *Deriver) FetchNegativeEvents(ctx context.Context, rivals []string, days int) []NegativeEvent {
	return d.Derive(ctx, rivals, days).Events
}

// Derive scans today and the previous days-1 dates in the reference zone. Days that fail
// are skipped and listed in FailedDays.
func (d *Deriver) Derive(ctx context.Context, rivals []string, days int) Feed {
	if days <= 0 {
		days = DefaultLookbackDays
	}
	now := d.now()
	feed := Feed{
		Rivals:      rivals,
		GeneratedAt: now.UTC(),
		Events:      []NegativeEvent{},
		Days:        []DayResult{},
		FailedDays:  []string{},
	}
	set := rivalSet(rivals)
	if len(set) == 0 {
		return feed
	}

	today := timeutil.CalendarDate(now, d.loc)
	results := make([]DayResult, days)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for offset := 0; offset < days; offset++ {
		date := timeutil.FormatDate(today.AddDate(0, 0, -offset))
		g.Go(func() error {
			results[offset] = d.deriveDay(gctx, date, set)
			return nil
		})
	}
	_ = g.Wait()

	for _, day := range results {
		feed.Days = append(feed.Days, day)
		if day.Failed() {
			feed.FailedDays = append(feed.FailedDays, day.Date)
			continue
		}
		feed.Events = append(feed.Events, day.Events...)
	}
	SortEvents(feed.Events)
	return feed
}

// DeriveDate scans a single YYYY-MM-DD date. With no rivals it returns an empty day.
func (d *Deriver) DeriveDate(ctx context.Context, rivals []string, date string) DayResult {
	set := rivalSet(rivals)
	if len(set) == 0 {
		return DayResult{Date: date, Events: []NegativeEvent{}}
	}
	day := d.deriveDay(ctx, date, set)
	SortEvents(day.Events)
	return day
}

func rivalSet(rivals []string) map[string]struct{} {
	set := make(map[string]struct{}, len(rivals))
	for _, r := range rivals {
		set[r] = struct{}{}
	}
	return set
}

func (d *Deriver) deriveDay(ctx context.Context, date string, rivals map[string]struct{}) DayResult {
	logger := logging.FromContext(ctx, d.logger)
	day := DayResult{Date: date, Events: []NegativeEvent{}}

	scores, err := d.scores.FetchScores(ctx, date)
	if err != nil {
		day.Err = fmt.Errorf("fetch scores for %s: %w", date, err)
		d.metrics.RecordUnitFailure(metrics.UnitDay)
		logging.Warn(logger, "scores unavailable, skipping day", logging.FieldDate, date, "err", err)
		return day
	}

	for _, game := range scores.Games {
		_, homeIsRival := rivals[game.HomeTeam.Abbrev]
		_, awayIsRival := rivals[game.AwayTeam.Abbrev]
		if !homeIsRival && !awayIsRival {
			continue
		}

		var shots map[string]string
		if len(game.Goals) > 0 {
			shots = d.shotTypes(ctx, game.ID)
		}

		for _, goal := range game.Goals {
			shotType := shots[shotKey(goal.Period, goal.TimeInPeriod)]
			switch {
			case homeIsRival && goal.TeamAbbrev == game.AwayTeam.Abbrev:
				day.Events = append(day.Events, buildGoalAgainstEvent(game, goal, game.HomeTeam, game.AwayTeam, true, shotType))
			case awayIsRival && goal.TeamAbbrev == game.HomeTeam.Abbrev:
				day.Events = append(day.Events, buildGoalAgainstEvent(game, goal, game.AwayTeam, game.HomeTeam, false, shotType))
			}
		}

		if !game.GameState.IsCompleted() {
			continue
		}
		home, away := game.HomeTeam.Score, game.AwayTeam.Score
		switch {
		case homeIsRival && home < away:
			day.Events = append(day.Events, buildLossEvent(game, game.HomeTeam, game.AwayTeam, true))
		case awayIsRival && away < home:
			day.Events = append(day.Events, buildLossEvent(game, game.AwayTeam, game.HomeTeam, false))
		}
	}

	logging.Info(logger, "derived negative events", logging.FieldDate, date, logging.FieldCount, len(day.Events))
	return day
}

// shotTypes maps "period-time" to shot type for a game's goals. Failures yield an empty lookup.
func (d *Deriver) shotTypes(ctx context.Context, gameID int64) map[string]string {
	lookup := map[string]string{}
	if d.plays == nil {
		return lookup
	}
	pbp, err := d.plays.FetchPlayByPlay(ctx, gameID)
	if err != nil {
		d.metrics.RecordUnitFailure(metrics.UnitPlays)
		logging.Warn(logging.FromContext(ctx, d.logger), "play-by-play unavailable, continuing without shot types",
			logging.FieldGameID, gameID,
			"err", err,
		)
		return lookup
	}
	return buildShotTypeLookup(pbp)
}

func buildShotTypeLookup(pbp games.PlayByPlay) map[string]string {
	lookup := make(map[string]string)
	for _, play := range pbp.Plays {
		if play.TypeDescKey != "goal" {
			continue
		}
		period := play.PeriodDescriptor.Number
		if period == 0 || play.TimeInPeriod == "" || play.ShotType == "" {
			continue
		}
		lookup[shotKey(period, play.TimeInPeriod)] = play.ShotType
	}
	return lookup
}

func shotKey(period int, clock string) string {
	return fmt.Sprintf("%d-%s", period, clock)
}
