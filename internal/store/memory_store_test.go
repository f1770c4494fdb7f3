package store

import (
	"sync"
	"testing"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
)

func sampleFeed(ids ...string) events.Feed {
	feed := events.Feed{Rivals: []string{"TOR"}}
	for _, id := range ids {
		feed.Events = append(feed.Events, events.NegativeEvent{ID: id, TeamAbbreviation: "TOR"})
	}
	return feed
}

func TestMemoryStoreFeedEmptyUntilSet(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Feed(); ok {
		t.Fatalf("expected no feed before the first set")
	}

	s.SetFeed(sampleFeed("loss-1", "goal-1-04:12-1"))
	feed, ok := s.Feed()
	if !ok || len(feed.Events) != 2 {
		t.Fatalf("expected stored feed, got %+v ok=%v", feed, ok)
	}

	e, ok := s.GetEvent("loss-1")
	if !ok || e.TeamAbbreviation != "TOR" {
		t.Fatalf("expected to find event loss-1")
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.GetEvent("missing"); ok {
		t.Fatalf("expected missing id to return false")
	}
}

func TestMemoryStoreSetReplacesFeed(t *testing.T) {
	s := NewMemoryStore()
	s.SetFeed(sampleFeed("old"))
	s.SetFeed(sampleFeed("new"))

	if _, ok := s.GetEvent("old"); ok {
		t.Fatalf("expected old event to be removed after replace")
	}
	if _, ok := s.GetEvent("new"); !ok {
		t.Fatalf("expected new event to be present")
	}
}

func TestMemoryStoreFeedReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.SetFeed(sampleFeed("copy"))

	feed, _ := s.Feed()
	feed.Events[0].ID = "mutated"
	feed.Rivals[0] = "MTL"

	again, _ := s.Feed()
	if again.Events[0].ID != "copy" || again.Rivals[0] != "TOR" {
		t.Fatalf("expected store to be unaffected by caller mutation")
	}
}

func TestMemoryStoreTeams(t *testing.T) {
	s := NewMemoryStore()
	if len(s.ListTeams()) != 0 {
		t.Fatalf("expected no teams initially")
	}
	s.SetTeams([]teams.Team{{Abbreviation: "TOR"}})
	list := s.ListTeams()
	list[0].Abbreviation = "XXX"
	if got := s.ListTeams(); len(got) != 1 || got[0].Abbreviation != "TOR" {
		t.Fatalf("expected a copy of stored teams, got %+v", got)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetFeed(sampleFeed("a", "b"))
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Feed()
			_, _ = s.GetEvent("a")
		}()
	}
	wg.Wait()
}
