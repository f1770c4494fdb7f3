package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/curses"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/poller"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
)

type nowFunc func() time.Time

// FeedDeriver derives a live feed for an explicit rival set.
type FeedDeriver interface {
	Derive(ctx context.Context, rivals []string, days int) events.Feed
}

// FeedStore exposes the poller's latest feed.
type FeedStore interface {
	Feed() (events.Feed, bool)
}

// CurseEngine computes curses and game context for teams.
type CurseEngine interface {
	ComputeWithContext(ctx context.Context, team string) curses.TeamCurses
	ComputeForTeams(ctx context.Context, teams []string) map[string][]curses.Record
	WorstCurse(ctx context.Context, team string) *curses.Record
	TodayGameContext(ctx context.Context, team string) *curses.GameContext
}

// TeamLister lists league teams.
type TeamLister interface {
	Teams(ctx context.Context) ([]teams.Team, error)
}

// RivalManager reads and edits the watched rival set.
type RivalManager interface {
	Rivals(ctx context.Context) ([]string, error)
	Replace(ctx context.Context, abbrevs []string) ([]string, error)
	Toggle(ctx context.Context, team string) ([]string, error)
	Clear(ctx context.Context) ([]string, error)
}

// Services groups what the handlers read from. Nil members disable their routes with 503.
type Services struct {
	Deriver      FeedDeriver
	Feed         FeedStore
	Snapshots    snapshots.Store
	Curses       CurseEngine
	Teams        TeamLister
	Rivals       RivalManager
	LookbackDays int
	Status       func() poller.Status
}

// Handler wires HTTP routes to the domain services.
type Handler struct {
	deriver  FeedDeriver
	feed     FeedStore
	snaps    snapshots.Store
	curses   CurseEngine
	teams    TeamLister
	rivals   RivalManager
	days     int
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc Services, logger *slog.Logger) *Handler {
	days := svc.LookbackDays
	if days <= 0 {
		days = events.DefaultLookbackDays
	}
	return &Handler{
		deriver:  svc.Deriver,
		feed:     svc.Feed,
		snaps:    svc.Snapshots,
		curses:   svc.Curses,
		teams:    svc.Teams,
		rivals:   svc.Rivals,
		days:     days,
		logger:   logger,
		now:      time.Now,
		statusFn: svc.Status,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

var teamPattern = regexp.MustCompile(`^[A-Z]{2,3}$`)

// parseTeam upper-cases and validates a team abbreviation.
func parseTeam(raw string) (string, bool) {
	team := strings.ToUpper(strings.TrimSpace(raw))
	return team, teamPattern.MatchString(team)
}

// parseTeamList splits a comma-separated list; any invalid entry fails the whole list.
func parseTeamList(raw string) ([]string, bool) {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		team, ok := parseTeam(part)
		if !ok {
			return nil, false
		}
		out = append(out, team)
	}
	return out, true
}
