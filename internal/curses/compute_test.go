package curses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
)

func TestWeeksSinceWinOnDayWithoutGamesOnThatDay(t *testing.T) {
	log := logOf(quietSeason()...)

	got := WeeksSinceWinOnDay(log, "Wednesday", wednesdayNoon, eastern)

	assert.Equal(t, 0, got.Value)
	assert.Empty(t, got.Evidence)
}

func TestWeeksSinceWinOnDayCountsFromLastWin(t *testing.T) {
	log := logOf(
		final(1, "2024-03-13", true, 1, 2),
		final(2, "2024-03-16", true, 5, 1),
		final(3, "2024-02-28", false, 4, 3),
		final(4, "2024-02-21", true, 0, 2),
	)

	got := WeeksSinceWinOnDay(log, "Wednesday", wednesdayNoon, eastern)

	assert.Equal(t, 3, got.Value)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, int64(1), got.Evidence[0].ID)
}

func TestWeeksSinceWinOnDayAnchorsOnOldestWithoutWin(t *testing.T) {
	log := logOf(
		final(1, "2024-03-13", true, 1, 2),
		final(3, "2024-02-28", false, 2, 3),
		final(4, "2024-02-21", true, 0, 2),
	)

	got := WeeksSinceWinOnDay(log, "Wednesday", wednesdayNoon, eastern)

	assert.Equal(t, 4, got.Value)
	assert.Len(t, got.Evidence, 3)
}

func TestLocationLossStreakStopsAtFirstNonLoss(t *testing.T) {
	outcomes := []outcome{
		{home: true, us: 1, them: 3},
		{home: false, us: 4, them: 1},
		{home: true, us: 2, them: 3},
		{home: true, us: 0, them: 2},
		{home: false, us: 5, them: 2},
		{home: true, us: 1, them: 4},
		{home: true, us: 2, them: 5},
		{home: true, us: 3, them: 2},
		{home: true, us: 1, them: 6},
	}
	log := logOf(series("2024-03-16", 2, outcomes...)...)

	got := LocationLossStreak(log, true)

	assert.Equal(t, 5, got.Value)
	require.Len(t, got.Evidence, 5)
	var homeGames []games.GameRecord
	for _, g := range log {
		if g.IsHome {
			homeGames = append(homeGames, g)
		}
	}
	assert.Equal(t, homeGames[:5], got.Evidence)

	road := LocationLossStreak(log, false)
	assert.Equal(t, 0, road.Value)
	assert.Empty(t, road.Evidence)
}

func TestBackToBackRecordCountsSecondGames(t *testing.T) {
	log := logOf(
		final(1, "2024-01-01", true, 3, 1),
		final(2, "2024-01-02", false, 1, 4),
		final(3, "2024-01-05", true, 2, 3),
		final(4, "2024-01-06", true, 4, 2),
		final(5, "2024-01-09", false, 2, 2),
		final(6, "2024-01-12", false, 0, 1),
	)

	got := BackToBackRecord(log)

	assert.Equal(t, BackToBack{Wins: 1, Losses: 1, Total: 2}, got.Value)
	require.Len(t, got.Evidence, 1)
	assert.Equal(t, int64(2), got.Evidence[0].ID)
}

func TestGamesSinceWin(t *testing.T) {
	empty := GamesSinceWin(nil)
	assert.Equal(t, 0, empty.Value)
	assert.NotNil(t, empty.Evidence)
	assert.Empty(t, empty.Evidence)

	losses := logOf(series("2024-03-16", 2,
		outcome{home: true, us: 1, them: 2},
		outcome{home: false, us: 0, them: 2},
		outcome{home: true, us: 3, them: 4},
	)...)
	all := GamesSinceWin(losses)
	assert.Equal(t, 3, all.Value)
	assert.Equal(t, losses, all.Evidence)

	mixed := logOf(series("2024-03-16", 2,
		outcome{home: true, us: 1, them: 2},
		outcome{home: true, us: 5, them: 2},
		outcome{home: false, us: 0, them: 2},
	)...)
	assert.Equal(t, 1, GamesSinceWin(mixed).Value)
}

func TestShutoutCountWindow(t *testing.T) {
	outcomes := make([]outcome, 12)
	for i := range outcomes {
		outcomes[i] = outcome{home: true, us: 2, them: 1}
	}
	outcomes[0] = outcome{home: true, us: 0, them: 3}
	outcomes[4] = outcome{home: false, us: 0, them: 1}
	outcomes[11] = outcome{home: false, us: 0, them: 2}
	log := logOf(series("2024-03-16", 2, outcomes...)...)

	def := ShutoutCount(log, 0)
	assert.Equal(t, Shutouts{Shutouts: 2, Total: 10}, def.Value)

	wide := ShutoutCount(log, 15)
	assert.Equal(t, Shutouts{Shutouts: 3, Total: 12}, wide.Value)
	assert.Len(t, wide.Evidence, 3)
}

func TestBlowoutLossesUsesMargin(t *testing.T) {
	log := logOf(series("2024-03-16", 2,
		outcome{home: true, us: 1, them: 4},
		outcome{home: true, us: 1, them: 3},
		outcome{home: false, us: 0, them: 6},
		outcome{home: false, us: 6, them: 0},
	)...)

	got := BlowoutLosses(log, 15, 3)

	assert.Equal(t, Blowouts{Blowouts: 2, Total: 4}, got.Value)
}

func TestOneGoalRecord(t *testing.T) {
	log := logOf(series("2024-03-16", 2,
		outcome{home: true, us: 1, them: 2},
		outcome{home: true, us: 3, them: 2},
		outcome{home: false, us: 2, them: 3},
		outcome{home: false, us: 1, them: 4},
		outcome{home: true, us: 2, them: 2},
	)...)

	got := OneGoalRecord(log, 20)

	assert.Equal(t, OneGoal{Losses: 2, Wins: 1, Total: 3}, got.Value)
	assert.Len(t, got.Evidence, 2)
}

func TestComebackRecordNeverReportsComebacks(t *testing.T) {
	log := logOf(series("2024-03-16", 2,
		outcome{home: true, us: 1, them: 3},
		outcome{home: true, us: 1, them: 2},
		outcome{home: false, us: 0, them: 5},
	)...)

	assert.Equal(t, Comebacks{Comebacks: 0, Losses: 2, Total: 2}, ComebackRecord(log))
}
