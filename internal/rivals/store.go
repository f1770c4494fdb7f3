// Package rivals persists the set of teams a user is watching.
package rivals

import (
	"context"
	"sort"
	"strings"
)

// Key names the rival set in every backend.
const Key = "rival-watch-rivals"

// Store loads and replaces the rival set. Load returns an empty set for missing or
// malformed data and an error only when the backend cannot be read.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, rivals []string) error
}

// Normalize upper-cases, trims, dedupes and sorts abbreviations. Blank entries are dropped.
func Normalize(rivals []string) []string {
	seen := make(map[string]struct{}, len(rivals))
	out := make([]string, 0, len(rivals))
	for _, r := range rivals {
		abbrev := strings.ToUpper(strings.TrimSpace(r))
		if abbrev == "" {
			continue
		}
		if _, ok := seen[abbrev]; ok {
			continue
		}
		seen[abbrev] = struct{}{}
		out = append(out, abbrev)
	}
	sort.Strings(out)
	return out
}
