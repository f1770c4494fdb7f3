package store

import (
	"sync"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
)

// MemoryStore keeps the latest derived feed and teams list in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	feed    events.Feed
	hasFeed bool
	byID    map[string]events.NegativeEvent
	teams   []teams.Team
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]events.NegativeEvent),
	}
}

// Feed returns a copy of the current feed and whether one has been stored.
func (s *MemoryStore) Feed() (events.Feed, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.hasFeed {
		return events.Feed{}, false
	}
	out := s.feed
	out.Rivals = append([]string{}, s.feed.Rivals...)
	out.Events = append([]events.NegativeEvent{}, s.feed.Events...)
	out.Days = append([]events.DayResult{}, s.feed.Days...)
	out.FailedDays = append([]string{}, s.feed.FailedDays...)
	return out, true
}

// SetFeed replaces the stored feed.
func (s *MemoryStore) SetFeed(feed events.Feed) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feed = feed
	s.hasFeed = true
	s.byID = make(map[string]events.NegativeEvent, len(feed.Events))
	for _, e := range feed.Events {
		s.byID[e.ID] = e
	}
}

// GetEvent retrieves an event of the current feed by ID.
func (s *MemoryStore) GetEvent(id string) (events.NegativeEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	return e, ok
}

// ListTeams returns a copy of the last stored teams list.
func (s *MemoryStore) ListTeams() []teams.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]teams.Team{}, s.teams...)
}

// SetTeams replaces the stored teams list.
func (s *MemoryStore) SetTeams(items []teams.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.teams = append([]teams.Team{}, items...)
}
