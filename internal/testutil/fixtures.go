package testutil

import (
	"fmt"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/events"
)

// FinalGame returns a completed game on date with the given score.
func FinalGame(id int64, date, home, away string, homeScore, awayScore int) games.Game {
	return games.Game{
		ID:           id,
		GameDate:     date,
		StartTimeUTC: date + "T23:00:00Z",
		GameState:    games.StateOff,
		HomeTeam:     games.Side{Abbrev: home, CommonName: home, Score: homeScore},
		AwayTeam:     games.Side{Abbrev: away, CommonName: away, Score: awayScore},
	}
}

// ScheduledGame returns a future game on date.
func ScheduledGame(id int64, date, home, away string) games.Game {
	g := FinalGame(id, date, home, away, 0, 0)
	g.GameState = games.StateFuture
	return g
}

// SampleDay returns a day where home loses 2-4 to away, with every away goal in the summary.
func SampleDay(date, home, away string) games.DayScores {
	g := FinalGame(1, date, home, away, 2, 4)
	for i := 0; i < 4; i++ {
		g.Goals = append(g.Goals, games.Goal{
			Period:           i%3 + 1,
			PeriodDescriptor: games.PeriodDescriptor{Number: i%3 + 1, PeriodType: "REG"},
			TimeInPeriod:     fmt.Sprintf("%02d:00", 5+i),
			TeamAbbrev:       away,
			Name:             "A. Scorer",
		})
	}
	return games.DayScores{Date: date, Games: []games.Game{g}}
}

// SampleFeed builds a feed holding a single loss for rival.
func SampleFeed(rival string) events.Feed {
	return events.Feed{
		Rivals: []string{rival},
		Events: []events.NegativeEvent{
			{ID: "loss-1", Type: events.EventLoss, TeamAbbreviation: rival},
		},
		Days:       []events.DayResult{},
		FailedDays: []string{},
	}
}
