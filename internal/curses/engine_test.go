package curses

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/teststubs"
)

type fakeTemplate struct {
	id       string
	cursed   bool
	severity int
	panics   bool
}

func (f fakeTemplate) ID() string         { return f.id }
func (f fakeTemplate) Category() Category { return CategoryStreak }
func (f fakeTemplate) Compute(log []games.GameRecord) Result {
	if f.panics {
		var m map[string]int
		m["boom"]++
	}
	return Result{Value: len(log)}
}
func (f fakeTemplate) IsCursed(Result) bool              { return f.cursed }
func (f fakeTemplate) Severity(Result) int               { return f.severity }
func (f fakeTemplate) Format(Result, string) string      { return f.id }
func (f fakeTemplate) RelevantFor(ctx *GameContext) bool { return ctx != nil }

func newTestEngine(provider *teststubs.StubProvider, rec *metrics.Recorder) *Engine {
	e := NewEngine(provider, nil, rec, eastern, 4)
	e.now = func() time.Time { return wednesdayNoon }
	return e
}

func withTemplates(e *Engine, tmpls ...Template) {
	e.templates = func(time.Time, *time.Location) []Template { return tmpls }
}

func TestEvaluateRequiresTenCompletedGames(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{}, nil)
	log := logOf(quietSeason()[:9]...)

	got := e.Evaluate(context.Background(), log, team, nil, wednesdayNoon)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEvaluateReturnsClosestWhenNothingCursed(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{}, nil)
	log := logOf(quietSeason()...)

	got := e.Evaluate(context.Background(), log, team, nil, wednesdayNoon)

	require.Len(t, got, 1)
	assert.False(t, got[0].IsCursed)
	assert.Equal(t, "day-drought-wednesday", got[0].ID)
	assert.True(t, strings.HasSuffix(got[0].Formatted, " (closest to cursed)"))
	assert.Equal(t, 0, got[0].Severity)
}

func TestEvaluateClosestPrefersHighestSeverityStable(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{}, nil)
	withTemplates(e,
		fakeTemplate{id: "a", severity: 1},
		fakeTemplate{id: "b", severity: 2},
		fakeTemplate{id: "c", severity: 2},
	)

	got := e.Evaluate(context.Background(), logOf(quietSeason()...), team, nil, wednesdayNoon)

	require.Len(t, got, 1)
	assert.Equal(t, "b (closest to cursed)", got[0].Formatted)
}

func TestEvaluateSortsCursedBySeverityStable(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{}, nil)
	withTemplates(e,
		fakeTemplate{id: "low", cursed: true, severity: 1},
		fakeTemplate{id: "skip", cursed: false, severity: 5},
		fakeTemplate{id: "high-1", cursed: true, severity: 4},
		fakeTemplate{id: "high-2", cursed: true, severity: 4},
		fakeTemplate{id: "negative", cursed: true, severity: -3},
	)

	got := e.Evaluate(context.Background(), logOf(quietSeason()...), team, &GameContext{}, wednesdayNoon)

	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
		assert.True(t, r.IsRelevant)
		assert.GreaterOrEqual(t, r.Severity, 0)
	}
	assert.Equal(t, []string{"high-1", "high-2", "low", "negative"}, ids)
}

func TestEvaluateSkipsPanickingTemplate(t *testing.T) {
	rec := metrics.NewRecorder()
	e := newTestEngine(&teststubs.StubProvider{}, rec)
	withTemplates(e,
		fakeTemplate{id: "broken", cursed: true, severity: 5, panics: true},
		fakeTemplate{id: "ok", cursed: true, severity: 2},
	)

	got := e.Evaluate(context.Background(), logOf(quietSeason()...), team, nil, wednesdayNoon)

	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
	assert.Equal(t, 1, rec.UnitFailures(metrics.UnitTemplate))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{}, nil)
	schedule := append(series("2024-03-18", 1,
		outcome{home: true, us: 0, them: 4},
		outcome{home: true, us: 1, them: 5},
		outcome{home: false, us: 0, them: 3},
	), quietSeason()...)
	log := logOf(schedule...)

	first := e.Evaluate(context.Background(), log, team, nil, wednesdayNoon)
	second := e.Evaluate(context.Background(), log, team, nil, wednesdayNoon)

	assert.Equal(t, first, second)
}

func TestComputeForTeamReportsHomeStreak(t *testing.T) {
	homeLosses := series("2024-03-19", 2,
		outcome{home: true, us: 1, them: 3},
		outcome{home: true, us: 2, them: 3},
		outcome{home: true, us: 0, them: 1},
		outcome{home: true, us: 2, them: 4},
		outcome{home: true, us: 1, them: 2},
		outcome{home: true, us: 4, them: 1},
	)
	provider := &teststubs.StubProvider{Schedules: map[string][]games.Game{
		team: append(homeLosses, quietSeasonFrom("2024-02-03")...),
	}}
	e := newTestEngine(provider, nil)

	got := e.ComputeForTeam(context.Background(), team, &GameContext{IsHome: true})

	var streak *Record
	for i := range got {
		if got[i].ID == "home-loss-streak" {
			streak = &got[i]
		}
	}
	require.NotNil(t, streak)
	assert.Equal(t, 5, streak.Value)
	assert.Equal(t, 3, streak.Severity)
	assert.True(t, streak.IsCursed)
	assert.True(t, streak.IsRelevant)
	assert.Equal(t, "5 straight losses at home", streak.Formatted)
	assert.Len(t, streak.Evidence, 5)
}

func TestComputeForTeamFetchFailureIsEmpty(t *testing.T) {
	rec := metrics.NewRecorder()
	e := newTestEngine(&teststubs.StubProvider{Err: errors.New("upstream down")}, rec)

	got := e.ComputeForTeam(context.Background(), team, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, rec.UnitFailures(metrics.UnitTeam))
}

func TestComputeForTeamRecoversFromProviderPanic(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{PanicOnSchedule: true}, nil)

	assert.Empty(t, e.ComputeForTeam(context.Background(), team, nil))
	assert.Nil(t, e.TodayGameContext(context.Background(), team))
}

func TestComputeForTeamsKeepsEveryTeam(t *testing.T) {
	rec := metrics.NewRecorder()
	provider := &teststubs.StubProvider{
		Schedules:    map[string][]games.Game{team: quietSeason()},
		ScheduleErrs: map[string]error{"MTL": errors.New("timeout")},
	}
	e := newTestEngine(provider, rec)

	got := e.ComputeForTeams(context.Background(), []string{team, "MTL", "BOS"})

	require.Len(t, got, 3)
	assert.Len(t, got[team], 1)
	assert.Empty(t, got["MTL"])
	assert.Empty(t, got["BOS"])
	assert.Equal(t, 1, rec.UnitFailures(metrics.UnitTeam))

	results := e.ComputeTeamResults(context.Background(), []string{"MTL", team})
	require.Len(t, results, 2)
	assert.Equal(t, "MTL", results[0].Team)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestWorstCurse(t *testing.T) {
	provider := &teststubs.StubProvider{Schedules: map[string][]games.Game{
		team:  quietSeason(),
		"MTL": quietSeason()[:3],
	}}
	e := newTestEngine(provider, nil)

	worst := e.WorstCurse(context.Background(), team)
	require.NotNil(t, worst)
	assert.Equal(t, "day-drought-wednesday", worst.ID)

	assert.Nil(t, e.WorstCurse(context.Background(), "MTL"))
}

func TestComputeWithContextPartitionsByRelevance(t *testing.T) {
	schedule := append([]games.Game{
		{ID: 1, GameDate: "2024-03-20", GameState: games.StateFuture,
			HomeTeam: games.Side{Abbrev: team}, AwayTeam: games.Side{Abbrev: "OTT"}},
		final(2, "2024-03-19", false, 1, 4),
	}, quietSeason()...)
	e := newTestEngine(&teststubs.StubProvider{Schedules: map[string][]games.Game{team: schedule}}, nil)
	withTemplates(e,
		fakeTemplate{id: "relevant", cursed: true, severity: 2},
		alwaysRelevant{fakeTemplate{id: "also", cursed: true, severity: 3}},
		neverRelevant{fakeTemplate{id: "other", cursed: true, severity: 1}},
	)

	got := e.ComputeWithContext(context.Background(), team)

	require.NotNil(t, got.GameContext)
	assert.True(t, got.GameContext.IsHome)
	assert.True(t, got.GameContext.IsBackToBack)
	assert.Equal(t, "OTT", got.GameContext.Opponent)
	assert.Equal(t, "Wednesday", got.GameContext.DayOfWeek)
	assert.Len(t, got.AllCurses, 3)
	require.Len(t, got.Relevant, 2)
	assert.Equal(t, "also", got.Relevant[0].ID)
	require.Len(t, got.Other, 1)
	assert.Equal(t, "other", got.Other[0].ID)
}

func TestComputeWithContextFetchFailure(t *testing.T) {
	e := newTestEngine(&teststubs.StubProvider{Err: errors.New("down")}, nil)

	got := e.ComputeWithContext(context.Background(), team)

	assert.Nil(t, got.GameContext)
	assert.Empty(t, got.AllCurses)
	assert.NotNil(t, got.Relevant)
	assert.NotNil(t, got.Other)
}

type alwaysRelevant struct{ fakeTemplate }

func (alwaysRelevant) RelevantFor(*GameContext) bool { return true }

type neverRelevant struct{ fakeTemplate }

func (neverRelevant) RelevantFor(*GameContext) bool { return false }
