package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rivalwatch/rival-watch-service/internal/domain/games"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
)

// ErrNotFound is returned by StubProvider for keys it has no data for.
var ErrNotFound = errors.New("stub: not found")

// StubProvider is a test double for providers.DataProvider. Maps are read-only once
// the stub is in use; per-key errors take precedence over data.
type StubProvider struct {
	Schedules map[string][]games.Game
	Scores    map[string]games.DayScores
	Plays     map[int64]games.PlayByPlay
	Standings []teams.Team

	Err          error
	ScheduleErrs map[string]error
	ScoreErrs    map[string]error
	PlayErrs     map[int64]error

	// PanicOnSchedule makes FetchClubSchedule panic, for exercising recovery paths.
	PanicOnSchedule bool

	Calls  atomic.Int32
	Notify chan struct{}

	notifyOnce sync.Once
}

// FetchClubSchedule returns the configured schedule for team; a missing team yields an empty schedule.
func (s *StubProvider) FetchClubSchedule(_ context.Context, team string) ([]games.Game, error) {
	s.track()
	if s.PanicOnSchedule {
		panic("stub schedule panic")
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if err := s.ScheduleErrs[team]; err != nil {
		return nil, err
	}
	return s.Schedules[team], nil
}

// FetchScores returns the configured scores for date; a missing date yields an empty day.
func (s *StubProvider) FetchScores(_ context.Context, date string) (games.DayScores, error) {
	s.track()
	if s.Err != nil {
		return games.DayScores{}, s.Err
	}
	if err := s.ScoreErrs[date]; err != nil {
		return games.DayScores{}, err
	}
	if day, ok := s.Scores[date]; ok {
		return day, nil
	}
	return games.DayScores{Date: date}, nil
}

// FetchPlayByPlay returns the configured plays or ErrNotFound.
func (s *StubProvider) FetchPlayByPlay(_ context.Context, gameID int64) (games.PlayByPlay, error) {
	s.track()
	if s.Err != nil {
		return games.PlayByPlay{}, s.Err
	}
	if err := s.PlayErrs[gameID]; err != nil {
		return games.PlayByPlay{}, err
	}
	pbp, ok := s.Plays[gameID]
	if !ok {
		return games.PlayByPlay{}, ErrNotFound
	}
	return pbp, nil
}

// FetchStandings returns the configured standings.
func (s *StubProvider) FetchStandings(_ context.Context) ([]teams.Team, error) {
	s.track()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Standings, nil
}

func (s *StubProvider) track() {
	if s.Notify != nil {
		s.notifyOnce.Do(func() { close(s.Notify) })
	}
	s.Calls.Add(1)
}
