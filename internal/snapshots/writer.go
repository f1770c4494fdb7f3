package snapshots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// Writer persists snapshots and manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
	mu            sync.Mutex
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

func (w *Writer) snapshotPath(kind snapshotKind, date string) string {
	switch kind {
	case kindEvents:
		return EventsSnapshotPath(w.basePath, date)
	case kindTeams:
		return TeamsSnapshotPath(w.basePath, date)
	default:
		return filepath.Join(w.basePath, string(kind), fmt.Sprintf("%s.json", date))
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteEventsSnapshot writes the events snapshot for the given date (YYYY-MM-DD) and prunes old snapshots.
func (w *Writer) WriteEventsSnapshot(date string, snapshot EventsSnapshot) error {
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	if snapshot.Events == nil {
		snapshot.Events = []events.NegativeEvent{}
	}
	if snapshot.Rivals == nil {
		snapshot.Rivals = []string{}
	}
	sorted := append([]events.NegativeEvent{}, snapshot.Events...)
	events.SortEvents(sorted)
	snapshot.Events = sorted
	return w.writeSnapshot(kindEvents, date, snapshot)
}

// WriteTeamsSnapshot writes the teams list for the given date.
func (w *Writer) WriteTeamsSnapshot(date string, snapshot TeamsSnapshot) error {
	if snapshot.Date == "" {
		snapshot.Date = date
	}
	return w.writeSnapshot(kindTeams, date, snapshot)
}

// HasSnapshot reports whether an events snapshot exists for date.
func (w *Writer) HasSnapshot(date string) bool {
	return w.hasSnapshot(kindEvents, date)
}

func (w *Writer) hasSnapshot(kind snapshotKind, date string) bool {
	if w == nil || w.basePath == "" || date == "" {
		return false
	}
	_, err := os.Stat(w.snapshotPath(kind, date))
	return err == nil
}

func (w *Writer) writeSnapshot(kind snapshotKind, date string, payload any) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if date == "" {
		return fmt.Errorf("date required")
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	target := w.snapshotPath(kind, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp := target + ".tmp"
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return w.updateManifest(kind, date)
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}

	return w.updateManifest(kind, date)
}

func (w *Writer) updateManifest(kind snapshotKind, date string) error {
	m, _ := readManifest(manifestPath(w.basePath), w.retentionDays)
	now := w.now().UTC()

	dates, err := w.listDates(kind)
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned := w.pruneOldSnapshots(kind, dates)

	switch kind {
	case kindEvents:
		m.Events.Dates = pruned
		m.Events.LastRefreshed = now
	case kindTeams:
		m.Teams.Dates = pruned
		m.Teams.LastRefreshed = now
	}
	m.Retention.Days = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates(kind snapshotKind) ([]string, error) {
	dir := filepath.Join(w.basePath, string(kind))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, name[:len(name)-len(".json")])
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(kind snapshotKind, dates []string) []string {
	cutoff := timeutil.CalendarDate(w.now(), time.UTC).AddDate(0, 0, -w.retentionDays)
	keep := []string{}
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			_ = os.Remove(w.snapshotPath(kind, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}
