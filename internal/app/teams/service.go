package teams

import (
	"context"
	"log/slog"
	"sort"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
)

// Store keeps the last good teams list.
type Store interface {
	ListTeams() []teams.Team
	SetTeams([]teams.Team)
}

// Service lists league teams from the standings.
type Service struct {
	provider providers.StandingsProvider
	store    Store
	logger   *slog.Logger
}

// NewService constructs a Service. store may be nil, which disables the fallback list.
func NewService(provider providers.StandingsProvider, store Store, logger *slog.Logger) *Service {
	return &Service{provider: provider, store: store, logger: logger}
}

// Teams returns the standings teams, deduplicated by abbreviation and sorted by name.
// When upstream fails it serves the last good list if there is one.
func (s *Service) Teams(ctx context.Context) ([]teams.Team, error) {
	if s.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	standings, err := s.provider.FetchStandings(ctx)
	if err != nil {
		if s.store != nil {
			if cached := s.store.ListTeams(); len(cached) > 0 {
				logging.Warn(logging.FromContext(ctx, s.logger), "standings unavailable, serving cached teams",
					logging.FieldCount, len(cached),
					"err", err,
				)
				return cached, nil
			}
		}
		return nil, err
	}

	out := Dedupe(standings)
	if s.store != nil {
		s.store.SetTeams(out)
	}
	return out, nil
}

// Dedupe keeps the first entry per abbreviation and sorts by name.
func Dedupe(items []teams.Team) []teams.Team {
	seen := make(map[string]struct{}, len(items))
	out := make([]teams.Team, 0, len(items))
	for _, t := range items {
		if _, ok := seen[t.Abbreviation]; ok {
			continue
		}
		seen[t.Abbreviation] = struct{}{}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
