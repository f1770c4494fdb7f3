package events

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
)

// EventType distinguishes goals allowed from losses.
type EventType string

const (
	EventGoalAgainst EventType = "goalAgainst"
	EventLoss        EventType = "loss"
)

// lossPeriod places a loss ahead of the goals of the same game in the feed.
const lossPeriod = 99

// NegativeEvent is something bad that happened to a rival. Goal fields are empty on losses.
type NegativeEvent struct {
	ID                   string    `json:"id"`
	Type                 EventType `json:"type"`
	TeamAbbreviation     string    `json:"teamAbbreviation"`
	TeamName             string    `json:"teamName"`
	OpponentAbbreviation string    `json:"opponentAbbreviation"`
	OpponentName         string    `json:"opponentName"`
	Timestamp            time.Time `json:"timestamp"`
	GameID               int64     `json:"gameId"`
	PeriodNumber         int       `json:"periodNumber"`
	PeriodTimeSeconds    int       `json:"periodTimeSeconds"`
	RivalScore           int       `json:"rivalScore"`
	OpponentScore        int       `json:"opponentScore"`
	IsHomeGame           bool      `json:"isHomeGame"`

	Period       string `json:"period,omitempty"`
	TimeInPeriod string `json:"timeInPeriod,omitempty"`
	ScorerName   string `json:"scorerName,omitempty"`
	ShotType     string `json:"shotType,omitempty"`
	Strength     string `json:"strength,omitempty"`
	HighlightURL string `json:"highlightUrl,omitempty"`
}

func buildGoalAgainstEvent(game games.Game, goal games.Goal, rival, opponent games.Side, isHome bool, shotType string) NegativeEvent {
	return NegativeEvent{
		ID:                   fmt.Sprintf("goal-%d-%s-%d", game.ID, goal.TimeInPeriod, goal.Period),
		Type:                 EventGoalAgainst,
		TeamAbbreviation:     rival.Abbrev,
		TeamName:             rival.Name(),
		OpponentAbbreviation: opponent.Abbrev,
		OpponentName:         opponent.Name(),
		Timestamp:            startTime(game),
		GameID:               game.ID,
		PeriodNumber:         goal.Period,
		PeriodTimeSeconds:    periodSeconds(goal.TimeInPeriod),
		RivalScore:           rival.Score,
		OpponentScore:        opponent.Score,
		IsHomeGame:           isHome,
		Period:               periodLabel(goal.Period, goal.PeriodDescriptor),
		TimeInPeriod:         goal.TimeInPeriod,
		ScorerName:           scorerName(goal),
		ShotType:             shotType,
		Strength:             goal.Strength,
		HighlightURL:         goal.HighlightURL,
	}
}

func buildLossEvent(game games.Game, rival, opponent games.Side, isHome bool) NegativeEvent {
	return NegativeEvent{
		ID:                   fmt.Sprintf("loss-%d", game.ID),
		Type:                 EventLoss,
		TeamAbbreviation:     rival.Abbrev,
		TeamName:             rival.Name(),
		OpponentAbbreviation: opponent.Abbrev,
		OpponentName:         opponent.Name(),
		Timestamp:            startTime(game),
		GameID:               game.ID,
		PeriodNumber:         lossPeriod,
		PeriodTimeSeconds:    0,
		RivalScore:           rival.Score,
		OpponentScore:        opponent.Score,
		IsHomeGame:           isHome,
	}
}

func scorerName(goal games.Goal) string {
	if goal.FirstName != "" && goal.LastName != "" {
		return goal.FirstName + " " + goal.LastName
	}
	if goal.Name != "" {
		return goal.Name
	}
	return "Unknown"
}

func periodLabel(period int, desc games.PeriodDescriptor) string {
	switch desc.PeriodType {
	case "OT":
		return "OT"
	case "SO":
		return "SO"
	}
	switch period {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return "OT"
	}
}

// periodSeconds converts MM:SS to seconds; malformed input is 0.
func periodSeconds(clock string) int {
	mins, secs, ok := strings.Cut(clock, ":")
	if !ok {
		return 0
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0
	}
	s, err := strconv.Atoi(secs)
	if err != nil {
		return 0
	}
	return m*60 + s
}

func startTime(game games.Game) time.Time {
	t, err := time.Parse(time.RFC3339, game.StartTimeUTC)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}

// SortEvents orders events newest game first, then by period and clock, both descending.
func SortEvents(events []NegativeEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.After(b.Timestamp)
		}
		if a.PeriodNumber != b.PeriodNumber {
			return a.PeriodNumber > b.PeriodNumber
		}
		return a.PeriodTimeSeconds > b.PeriodTimeSeconds
	})
}
