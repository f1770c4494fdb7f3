package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/teststubs"
)

type stubTeamStore struct {
	items []teams.Team
}

func (s *stubTeamStore) ListTeams() []teams.Team     { return s.items }
func (s *stubTeamStore) SetTeams(items []teams.Team) { s.items = items }

func TestTeamsDedupesAndSortsByName(t *testing.T) {
	provider := &teststubs.StubProvider{Standings: []teams.Team{
		{Abbreviation: "TOR", Name: "Toronto Maple Leafs"},
		{Abbreviation: "BOS", Name: "Boston Bruins"},
		{Abbreviation: "TOR", Name: "Toronto (duplicate)"},
		{Abbreviation: "MTL", Name: "Montréal Canadiens"},
	}}
	store := &stubTeamStore{}
	svc := NewService(provider, store, nil)

	got, err := svc.Teams(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"BOS", "MTL", "TOR"}
	if len(got) != len(want) {
		t.Fatalf("expected %d teams, got %d", len(want), len(got))
	}
	for i, abbrev := range want {
		if got[i].Abbreviation != abbrev {
			t.Fatalf("position %d: expected %s, got %s", i, abbrev, got[i].Abbreviation)
		}
	}
	if got[2].Name != "Toronto Maple Leafs" {
		t.Fatalf("expected first TOR entry to win, got %s", got[2].Name)
	}
	if len(store.items) != 3 {
		t.Fatalf("expected store to hold the last good list")
	}
}

func TestTeamsFallsBackToStoreOnFailure(t *testing.T) {
	store := &stubTeamStore{items: []teams.Team{{Abbreviation: "TOR", Name: "Toronto Maple Leafs"}}}
	svc := NewService(&teststubs.StubProvider{Err: errors.New("boom")}, store, nil)

	got, err := svc.Teams(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected cached teams, got %+v err %v", got, err)
	}
}

func TestTeamsPropagatesErrorWithoutFallback(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(&teststubs.StubProvider{Err: boom}, &stubTeamStore{}, nil)
	if _, err := svc.Teams(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}

	svc = NewService(&teststubs.StubProvider{Err: boom}, nil, nil)
	if _, err := svc.Teams(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected upstream error with nil store, got %v", err)
	}
}

func TestTeamsWithoutProvider(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if _, err := svc.Teams(context.Background()); !errors.Is(err, providers.ErrProviderUnavailable) {
		t.Fatalf("expected provider unavailable, got %v", err)
	}
}
