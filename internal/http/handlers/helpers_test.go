package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/rivalwatch/rival-watch-service/internal/curses"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
)

type fakeDeriver struct {
	mu       sync.Mutex
	calls    int
	lastSet  []string
	lastDays int
	day      events.DayResult
}

func (f *fakeDeriver) Derive(_ context.Context, rivals []string, days int) events.Feed {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSet = rivals
	f.lastDays = days
	return events.Feed{
		Rivals:     rivals,
		Events:     []events.NegativeEvent{{ID: "live", Type: events.EventLoss}},
		Days:       []events.DayResult{},
		FailedDays: []string{},
	}
}

func (f *fakeDeriver) DeriveDate(_ context.Context, rivals []string, date string) events.DayResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSet = rivals
	day := f.day
	day.Date = date
	return day
}

type fakeEngine struct {
	worst *curses.Record
	gctx  *curses.GameContext
	teams []string
}

func (f *fakeEngine) ComputeWithContext(_ context.Context, team string) curses.TeamCurses {
	rec := curses.Record{ID: "winless-streak", Formatted: team + " cursed", IsRelevant: true}
	return curses.TeamCurses{
		Relevant:  []curses.Record{rec},
		Other:     []curses.Record{},
		AllCurses: []curses.Record{rec},
	}
}

func (f *fakeEngine) ComputeForTeams(_ context.Context, list []string) map[string][]curses.Record {
	f.teams = list
	out := make(map[string][]curses.Record, len(list))
	for _, t := range list {
		out[t] = []curses.Record{}
	}
	return out
}

func (f *fakeEngine) WorstCurse(_ context.Context, team string) *curses.Record {
	_ = team
	return f.worst
}

func (f *fakeEngine) TodayGameContext(_ context.Context, team string) *curses.GameContext {
	_ = team
	return f.gctx
}

type stubTeams struct {
	list []teams.Team
	err  error
}

func (s stubTeams) Teams(context.Context) ([]teams.Team, error) { return s.list, s.err }

type stubSnapshots struct {
	snap snapshots.EventsSnapshot
	err  error
}

func (s *stubSnapshots) LoadEvents(date string) (snapshots.EventsSnapshot, error) {
	if s.err != nil {
		return snapshots.EventsSnapshot{}, s.err
	}
	snap := s.snap
	snap.Date = date
	return snap, nil
}

func (s *stubSnapshots) LoadManifest() (snapshots.Manifest, error) {
	return snapshots.Manifest{}, errors.New("not used")
}

type failingRivals struct{}

func (failingRivals) Rivals(context.Context) ([]string, error) { return nil, errors.New("disk gone") }
func (failingRivals) Replace(context.Context, []string) ([]string, error) {
	return nil, errors.New("disk gone")
}
func (failingRivals) Toggle(context.Context, string) ([]string, error) {
	return nil, errors.New("disk gone")
}
func (failingRivals) Clear(context.Context) ([]string, error) { return nil, errors.New("disk gone") }

// withURLParams attaches chi route params so handlers can be called directly.
func withURLParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
