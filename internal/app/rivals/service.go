package rivals

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rivalwatch/rival-watch-service/internal/rivals"
)

// Service manages the watched rival set on top of a rivals.Store. Edits are serialized,
// so the process must be the store's only writer.
type Service struct {
	mu    sync.Mutex
	store rivals.Store
}

// NewService constructs a Service with the provided Store.
func NewService(store rivals.Store) *Service {
	return &Service{store: store}
}

// Rivals returns the sorted rival abbreviations.
func (s *Service) Rivals(ctx context.Context) ([]string, error) {
	out, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rivals: %w", err)
	}
	return rivals.Normalize(out), nil
}

// Replace stores exactly the given set.
func (s *Service) Replace(ctx context.Context, abbrevs []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, abbrevs)
}

func (s *Service) save(ctx context.Context, abbrevs []string) ([]string, error) {
	next := rivals.Normalize(abbrevs)
	if err := s.store.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save rivals: %w", err)
	}
	return next, nil
}

// Toggle adds team when absent and removes it when present.
func (s *Service) Toggle(ctx context.Context, team string) ([]string, error) {
	team = strings.ToUpper(strings.TrimSpace(team))
	if team == "" {
		return nil, fmt.Errorf("toggle rival: empty team")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.Rivals(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]string, 0, len(current)+1)
	found := false
	for _, r := range current {
		if r == team {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		next = append(next, team)
	}
	return s.save(ctx, next)
}

// Clear empties the set.
func (s *Service) Clear(ctx context.Context) ([]string, error) {
	return s.Replace(ctx, nil)
}
