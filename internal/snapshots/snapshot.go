package snapshots

import (
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
)

type snapshotKind string

const (
	kindEvents snapshotKind = "events"
	kindTeams  snapshotKind = "teams"
)

// EventsSnapshot is the negative events derived for one date.
type EventsSnapshot struct {
	Date        string                 `json:"date"`
	Rivals      []string               `json:"rivals"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Events      []events.NegativeEvent `json:"events"`
}

// TeamsSnapshot is the teams list as of a date.
type TeamsSnapshot struct {
	Date  string       `json:"date"`
	Teams []teams.Team `json:"teams"`
}

// FromDay builds a snapshot from a derived day.
func FromDay(day events.DayResult, rivals []string, generatedAt time.Time) EventsSnapshot {
	return EventsSnapshot{
		Date:        day.Date,
		Rivals:      rivals,
		GeneratedAt: generatedAt.UTC(),
		Events:      day.Events,
	}
}
