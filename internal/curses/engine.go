package curses

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
)

const (
	// MinCompletedGames is the smallest season log curses are computed for.
	MinCompletedGames = 10

	closestSuffix      = " (closest to cursed)"
	defaultConcurrency = 8
)

// Record is one evaluated template for a team.
type Record struct {
	ID         string             `json:"id"`
	Category   Category           `json:"category"`
	Value      any                `json:"value"`
	Evidence   []games.GameRecord `json:"evidence"`
	Formatted  string             `json:"formatted"`
	Severity   int                `json:"severity"`
	IsCursed   bool               `json:"isCursed"`
	IsRelevant bool               `json:"isRelevant"`
}

// TeamCurses splits a team's curses by relevance to today's game.
type TeamCurses struct {
	Relevant    []Record     `json:"relevant"`
	Other       []Record     `json:"other"`
	GameContext *GameContext `json:"gameContext"`
	AllCurses   []Record     `json:"allCurses"`
}

// TeamResult is the outcome of computing one team in a batch.
type TeamResult struct {
	Team   string
	Curses []Record
	Err    error
}

// Engine computes curses from team schedules.
type Engine struct {
	schedules   providers.ScheduleProvider
	logger      *slog.Logger
	metrics     *metrics.Recorder
	loc         *time.Location
	concurrency int
	now         func() time.Time
	templates   func(now time.Time, loc *time.Location) []Template
}

// NewEngine constructs an Engine. A nil loc means UTC; concurrency <= 0 uses the default.
func NewEngine(schedules providers.ScheduleProvider, logger *slog.Logger, recorder *metrics.Recorder, loc *time.Location, concurrency int) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Engine{
		schedules:   schedules,
		logger:      logger,
		metrics:     recorder,
		loc:         loc,
		concurrency: concurrency,
		now:         time.Now,
		templates:   Templates,
	}
}

// ComputeForTeam fetches team's schedule and evaluates every template against it.
// Upstream failures yield an empty list.
func (e *Engine) ComputeForTeam(ctx context.Context, team string, gameCtx *GameContext) []Record {
	schedule, err := e.fetchSchedule(ctx, team)
	if err != nil {
		return []Record{}
	}
	return e.Evaluate(ctx, games.GetCompletedGames(schedule, team), team, gameCtx, e.now())
}

// ComputeWithContext computes today's game context and the team's curses, partitioned by relevance.
func (e *Engine) ComputeWithContext(ctx context.Context, team string) TeamCurses {
	out := TeamCurses{Relevant: []Record{}, Other: []Record{}, AllCurses: []Record{}}

	schedule, err := e.fetchSchedule(ctx, team)
	if err != nil {
		return out
	}
	now := e.now()
	out.GameContext = ContextFromSchedule(schedule, team, now, e.loc)
	out.AllCurses = e.Evaluate(ctx, games.GetCompletedGames(schedule, team), team, out.GameContext, now)
	for _, r := range out.AllCurses {
		if r.IsRelevant {
			out.Relevant = append(out.Relevant, r)
		} else {
			out.Other = append(out.Other, r)
		}
	}
	return out
}

// ComputeForTeams computes curses for every team concurrently. Every requested team is
// present in the result; a failed team maps to an empty list.
func (e *Engine) ComputeForTeams(ctx context.Context, teams []string) map[string][]Record {
	results := e.ComputeTeamResults(ctx, teams)
	out := make(map[string][]Record, len(results))
	for _, r := range results {
		out[r.Team] = r.Curses
	}
	return out
}

// ComputeTeamResults is ComputeForTeams keeping the per-team outcome, in request order.
func (e *Engine) ComputeTeamResults(ctx context.Context, teams []string) []TeamResult {
	results := make([]TeamResult, len(teams))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, team := range teams {
		g.Go(func() error {
			results[i] = e.computeTeam(gctx, team)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// WorstCurse returns the highest ranked curse for team, or nil when there is none.
func (e *Engine) WorstCurse(ctx context.Context, team string) *Record {
	curses := e.ComputeForTeam(ctx, team, nil)
	if len(curses) == 0 {
		return nil
	}
	return &curses[0]
}

// TodayGameContext describes team's game today, or nil when it does not play or the
// schedule is unavailable.
func (e *Engine) TodayGameContext(ctx context.Context, team string) *GameContext {
	schedule, err := e.fetchSchedule(ctx, team)
	if err != nil {
		return nil
	}
	return ContextFromSchedule(schedule, team, e.now(), e.loc)
}

// Evaluate runs the template registry over a most-recent-first game log. With fewer than
// MinCompletedGames it returns an empty list. When nothing crosses its threshold the single
// most severe result is returned, marked as closest to cursed.
func (e *Engine) Evaluate(ctx context.Context, log []games.GameRecord, team string, gameCtx *GameContext, now time.Time) []Record {
	if len(log) < MinCompletedGames {
		return []Record{}
	}

	var all, cursed []Record
	for _, tmpl := range e.templates(now, e.loc) {
		rec, err := evaluateTemplate(tmpl, log, team, gameCtx)
		if err != nil {
			e.metrics.RecordUnitFailure(metrics.UnitTemplate)
			logging.Warn(logging.FromContext(ctx, e.logger), "curse template failed",
				logging.FieldTemplate, tmpl.ID(),
				logging.FieldTeam, team,
				"err", err,
			)
			continue
		}
		all = append(all, rec)
		if rec.IsCursed {
			cursed = append(cursed, rec)
		}
	}

	if len(cursed) == 0 {
		if len(all) == 0 {
			return []Record{}
		}
		closest := all[0]
		for _, rec := range all[1:] {
			if rec.Severity > closest.Severity {
				closest = rec
			}
		}
		closest.Formatted += closestSuffix
		return []Record{closest}
	}

	sort.SliceStable(cursed, func(i, j int) bool {
		return cursed[i].Severity > cursed[j].Severity
	})
	return cursed
}

func evaluateTemplate(tmpl Template, log []games.GameRecord, team string, gameCtx *GameContext) (rec Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template %s panicked: %v", tmpl.ID(), r)
		}
	}()

	result := tmpl.Compute(log)
	evidence := result.Evidence
	if evidence == nil {
		evidence = []games.GameRecord{}
	}
	return Record{
		ID:         tmpl.ID(),
		Category:   tmpl.Category(),
		Value:      result.Value,
		Evidence:   evidence,
		Formatted:  tmpl.Format(result, team),
		Severity:   max(tmpl.Severity(result), 0),
		IsCursed:   tmpl.IsCursed(result),
		IsRelevant: tmpl.RelevantFor(gameCtx),
	}, nil
}

func (e *Engine) computeTeam(ctx context.Context, team string) TeamResult {
	schedule, err := e.fetchSchedule(ctx, team)
	if err != nil {
		return TeamResult{Team: team, Curses: []Record{}, Err: err}
	}
	curses := e.Evaluate(ctx, games.GetCompletedGames(schedule, team), team, nil, e.now())
	return TeamResult{Team: team, Curses: curses}
}

// fetchSchedule logs and counts failures, including a panicking provider.
func (e *Engine) fetchSchedule(ctx context.Context, team string) (schedule []games.Game, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("schedule provider panicked: %v", r)
		}
		if err != nil {
			e.metrics.RecordUnitFailure(metrics.UnitTeam)
			logging.Warn(logging.FromContext(ctx, e.logger), "team schedule unavailable",
				logging.FieldTeam, team,
				"err", err,
			)
		}
	}()

	if e.schedules == nil {
		return nil, providers.ErrProviderUnavailable
	}
	schedule, err = e.schedules.FetchClubSchedule(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for %s: %w", team, err)
	}
	return schedule, nil
}
