package snapshots

import (
	"os"
	"testing"

	"github.com/rivalwatch/rival-watch-service/internal/events"
)

func simpleSnapshot(date string) EventsSnapshot {
	return EventsSnapshot{
		Date:   date,
		Rivals: []string{"TOR"},
		Events: []events.NegativeEvent{
			{ID: "loss-" + date, Type: events.EventLoss, TeamAbbreviation: "TOR"},
		},
	}
}

func writeSnapshot(t *testing.T, w *Writer, date string, snap EventsSnapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for date %s", date)
	}
	if err := w.WriteEventsSnapshot(date, snap); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSimpleSnapshot(t *testing.T, w *Writer, date string) {
	t.Helper()
	writeSnapshot(t, w, date, simpleSnapshot(date))
}

func requireSnapshotExists(t *testing.T, w *Writer, date string) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil when asserting snapshot for %s", date)
	}
	if _, err := os.Stat(EventsSnapshotPath(w.BasePath(), date)); err != nil {
		t.Fatalf("expected snapshot for %s to be written: %v", date, err)
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
