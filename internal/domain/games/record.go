package games

import (
	"sort"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// GameRecord is a completed game seen from one team's perspective.
type GameRecord struct {
	Game
	Team      string    `json:"team"`
	Date      time.Time `json:"date"`
	DayOfWeek string    `json:"dayOfWeek"`
	IsHome    bool      `json:"isHome"`
	TeamScore int       `json:"teamScore"`
	OppScore  int       `json:"oppScore"`
	IsWin     bool      `json:"isWin"`
	IsLoss    bool      `json:"isLoss"`
}

// Opponent returns the other side's abbreviation.
func (r GameRecord) Opponent() string {
	if r.IsHome {
		return r.AwayTeam.Abbrev
	}
	return r.HomeTeam.Abbrev
}

// Margin is how many goals the team lost by (negative for wins).
func (r GameRecord) Margin() int {
	return r.OppScore - r.TeamScore
}

// ResultLabel renders W, L, or OTL for games with neither outcome.
func (r GameRecord) ResultLabel() string {
	switch {
	case r.IsLoss:
		return "L"
	case r.IsWin:
		return "W"
	default:
		return "OTL"
	}
}

// GetCompletedGames keeps the terminal games of team's schedule and normalizes them,
// most recent first. Downstream consumers rely on that ordering.
func GetCompletedGames(schedule []Game, team string) []GameRecord {
	records := make([]GameRecord, 0, len(schedule))
	for _, g := range schedule {
		if !g.GameState.IsCompleted() {
			continue
		}
		date, err := timeutil.ParseDate(g.GameDate)
		if err != nil {
			continue
		}
		records = append(records, newRecord(g, team, date))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	return records
}

func newRecord(g Game, team string, date time.Time) GameRecord {
	isHome := g.HomeTeam.Abbrev == team
	teamScore, oppScore := g.AwayTeam.Score, g.HomeTeam.Score
	if isHome {
		teamScore, oppScore = g.HomeTeam.Score, g.AwayTeam.Score
	}
	return GameRecord{
		Game:      g,
		Team:      team,
		Date:      date,
		DayOfWeek: timeutil.WeekdayName(date),
		IsHome:    isHome,
		TeamScore: teamScore,
		OppScore:  oppScore,
		IsWin:     teamScore > oppScore,
		IsLoss:    teamScore < oppScore,
	}
}
