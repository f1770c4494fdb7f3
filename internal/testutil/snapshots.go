package testutil

import (
	"errors"
	"sync"
	"testing"

	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes a snapshot with a single loss for the date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, date); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, date string) error {
	if w == nil {
		return errors.New("nil snapshot writer")
	}
	return w.WriteEventsSnapshot(date, snapshots.EventsSnapshot{
		Date:   date,
		Rivals: []string{"TOR"},
		Events: []events.NegativeEvent{{ID: "loss-" + date, Type: events.EventLoss, TeamAbbreviation: "TOR"}},
	})
}

// SnapshotPath returns the expected file path for a snapshot date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.EventsSnapshotPath(w.BasePath(), date)
}

// StubSnapshotWriter records written snapshots by date.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	Written map[string]snapshots.EventsSnapshot
	Err     error
}

func (s *StubSnapshotWriter) WriteEventsSnapshot(date string, snap snapshots.EventsSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.Written == nil {
		s.Written = make(map[string]snapshots.EventsSnapshot)
	}
	s.Written[date] = snap
	return nil
}

// Get returns the snapshot written for date.
func (s *StubSnapshotWriter) Get(date string) (snapshots.EventsSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.Written[date]
	return snap, ok
}
