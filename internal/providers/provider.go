package providers

import (
	"context"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
)

// ScheduleProvider fetches a team's full season schedule.
type ScheduleProvider interface {
	FetchClubSchedule(ctx context.Context, team string) ([]games.Game, error)
}

// ScoreProvider fetches the score summary (games plus goals) for a YYYY-MM-DD date.
type ScoreProvider interface {
	FetchScores(ctx context.Context, date string) (games.DayScores, error)
}

// PlayByPlayProvider fetches the plays of a single game.
type PlayByPlayProvider interface {
	FetchPlayByPlay(ctx context.Context, gameID int64) (games.PlayByPlay, error)
}

// StandingsProvider fetches the teams listed in the current standings.
type StandingsProvider interface {
	FetchStandings(ctx context.Context) ([]teams.Team, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	ScheduleProvider
	ScoreProvider
	PlayByPlayProvider
	StandingsProvider
}
