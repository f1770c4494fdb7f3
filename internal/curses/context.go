package curses

import (
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// GameContext describes the team's game today.
type GameContext struct {
	IsHome       bool            `json:"isHome"`
	IsBackToBack bool            `json:"isBackToBack"`
	Opponent     string          `json:"opponent"`
	DayOfWeek    string          `json:"dayOfWeek"`
	GameState    games.GameState `json:"gameState"`
}

// ContextFromSchedule finds team's game on today's date in loc. It returns nil when the
// team does not play today. A completed game yesterday makes today a back-to-back.
func ContextFromSchedule(schedule []games.Game, team string, now time.Time, loc *time.Location) *GameContext {
	today := timeutil.CalendarDate(now, loc)
	todayStr := timeutil.FormatDate(today)
	yesterdayStr := timeutil.FormatDate(today.AddDate(0, 0, -1))

	var (
		todayGame  *games.Game
		backToBack bool
	)
	for i := range schedule {
		g := &schedule[i]
		switch g.GameDate {
		case todayStr:
			if todayGame == nil {
				todayGame = g
			}
		case yesterdayStr:
			if g.GameState.IsCompleted() {
				backToBack = true
			}
		}
	}
	if todayGame == nil {
		return nil
	}

	isHome := todayGame.HomeTeam.Abbrev == team
	opponent := todayGame.HomeTeam.Abbrev
	if isHome {
		opponent = todayGame.AwayTeam.Abbrev
	}
	return &GameContext{
		IsHome:       isHome,
		IsBackToBack: backToBack,
		Opponent:     opponent,
		DayOfWeek:    timeutil.WeekdayName(today),
		GameState:    todayGame.GameState,
	}
}
