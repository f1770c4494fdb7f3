package curses

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
)

func TestContextFromScheduleNoGameToday(t *testing.T) {
	assert.Nil(t, ContextFromSchedule(quietSeason(), team, wednesdayNoon, eastern))
}

func TestContextFromScheduleUsesLocalDate(t *testing.T) {
	// 02:00 UTC on the 20th is the evening of the 19th in eastern time.
	now := time.Date(2024, 3, 20, 2, 0, 0, 0, time.UTC)
	schedule := []games.Game{
		final(1, "2024-03-17", true, 2, 1),
		{ID: 2, GameDate: "2024-03-19", GameState: games.StateLive,
			HomeTeam: games.Side{Abbrev: "BOS"}, AwayTeam: games.Side{Abbrev: team}},
		{ID: 3, GameDate: "2024-03-20", GameState: games.StateFuture,
			HomeTeam: games.Side{Abbrev: team}, AwayTeam: games.Side{Abbrev: "OTT"}},
	}

	got := ContextFromSchedule(schedule, team, now, eastern)

	require.NotNil(t, got)
	assert.Equal(t, GameContext{
		IsHome:       false,
		IsBackToBack: false,
		Opponent:     "BOS",
		DayOfWeek:    "Tuesday",
		GameState:    games.StateLive,
	}, *got)
}

func TestContextFromScheduleBackToBackNeedsCompletedYesterday(t *testing.T) {
	schedule := []games.Game{
		{ID: 1, GameDate: "2024-03-19", GameState: games.StatePostponed,
			HomeTeam: games.Side{Abbrev: team}, AwayTeam: games.Side{Abbrev: "OTT"}},
		{ID: 2, GameDate: "2024-03-20", GameState: games.StatePregame,
			HomeTeam: games.Side{Abbrev: team}, AwayTeam: games.Side{Abbrev: "OTT"}},
	}

	got := ContextFromSchedule(schedule, team, wednesdayNoon, eastern)

	require.NotNil(t, got)
	assert.False(t, got.IsBackToBack)
	assert.True(t, got.IsHome)
	assert.Equal(t, "OTT", got.Opponent)
}
