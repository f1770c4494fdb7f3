package nhl

import (
	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
)

func mapGames(in []gameResponse) []games.Game {
	out := make([]games.Game, 0, len(in))
	for _, g := range in {
		out = append(out, mapGame(g))
	}
	return out
}

func mapGame(g gameResponse) games.Game {
	game := games.Game{
		ID:           g.ID,
		GameDate:     g.GameDate,
		StartTimeUTC: g.StartTimeUTC,
		GameState:    games.GameState(g.GameState),
		HomeTeam:     mapSide(g.HomeTeam),
		AwayTeam:     mapSide(g.AwayTeam),
	}
	if len(g.Goals) > 0 {
		game.Goals = make([]games.Goal, 0, len(g.Goals))
		for _, goal := range g.Goals {
			game.Goals = append(game.Goals, mapGoal(goal))
		}
	}
	return game
}

func mapSide(s sideResponse) games.Side {
	return games.Side{
		Abbrev:     s.Abbrev,
		CommonName: string(s.CommonName),
		Score:      s.Score,
	}
}

func mapGoal(g goalResponse) games.Goal {
	period := g.Period
	if period == 0 {
		period = g.PeriodDescriptor.Number
	}
	return games.Goal{
		Period:           period,
		PeriodDescriptor: mapPeriod(g.PeriodDescriptor),
		TimeInPeriod:     g.TimeInPeriod,
		TeamAbbrev:       string(g.TeamAbbrev),
		FirstName:        string(g.FirstName),
		LastName:         string(g.LastName),
		Name:             string(g.Name),
		Strength:         g.Strength,
		HighlightURL:     g.HighlightClipSharingURL,
	}
}

func mapPeriod(p periodDescriptorResponse) games.PeriodDescriptor {
	return games.PeriodDescriptor{Number: p.Number, PeriodType: p.PeriodType}
}

func mapPlayByPlay(gameID int64, p playByPlayResponse) games.PlayByPlay {
	out := games.PlayByPlay{GameID: gameID, Plays: make([]games.Play, 0, len(p.Plays))}
	for _, play := range p.Plays {
		out.Plays = append(out.Plays, games.Play{
			TypeDescKey:      play.TypeDescKey,
			PeriodDescriptor: mapPeriod(play.PeriodDescriptor),
			TimeInPeriod:     play.TimeInPeriod,
			ShotType:         play.Details.ShotType,
		})
	}
	return out
}

func mapStandings(s standingsResponse) []teams.Team {
	out := make([]teams.Team, 0, len(s.Standings))
	for _, entry := range s.Standings {
		out = append(out, teams.Team{
			Abbreviation: string(entry.TeamAbbrev),
			Name:         string(entry.TeamName),
			CommonName:   string(entry.TeamCommonName),
		})
	}
	return out
}
