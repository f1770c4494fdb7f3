package snapshots

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/teststubs"
)

type fakeDeriver struct {
	mu     sync.Mutex
	dates  []string
	failOn map[string]bool
}

func (d *fakeDeriver) DeriveDate(ctx context.Context, rivalSet []string, date string) events.DayResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dates = append(d.dates, date)
	if d.failOn[date] {
		return events.DayResult{Date: date, Err: errors.New("upstream down")}
	}
	return events.DayResult{Date: date, Events: []events.NegativeEvent{{ID: "loss-" + date, TeamAbbreviation: rivalSet[0]}}}
}

type recordingTeamStore struct {
	items []teams.Team
}

func (s *recordingTeamStore) SetTeams(items []teams.Team) { s.items = items }

var syncNow = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func newTestSyncer(d DayDeriver, store rivals.Store, standings *teststubs.StubProvider, w *Writer, cfg SyncConfig, teamStore TeamStore) *Syncer {
	s := NewSyncer(d, store, nil, w, cfg, time.UTC, nil, teamStore)
	if standings != nil {
		s.standings = standings
	}
	s.now = func() time.Time { return syncNow }
	return s
}

func TestSyncerBackfillsMissingPastDays(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	writer := NewWriter(t.TempDir(), 10000)
	deriver := &fakeDeriver{}
	cfg := SyncConfig{Enabled: true, Days: 4, Interval: time.Nanosecond}

	// Yesterday refreshes regardless; three days back is already stored.
	writeSimpleSnapshot(t, writer, "2024-01-09")
	writeSimpleSnapshot(t, writer, "2024-01-07")

	syncer := newTestSyncer(deriver, rivals.NewMemoryStore("TOR"), nil, writer, cfg, nil)
	syncer.Run(ctx)
	cancel()

	expected := []string{"2024-01-09", "2024-01-08"}
	assertDatesEqual(t, deriver.dates, expected)
	for _, date := range expected {
		requireSnapshotExists(t, writer, date)
	}
	requireSnapshotExists(t, writer, "2024-01-07")

	snap, err := NewFSStore(writer.BasePath()).LoadEvents("2024-01-08")
	if err != nil {
		t.Fatalf("expected backfilled snapshot, got %v", err)
	}
	if len(snap.Rivals) != 1 || snap.Rivals[0] != "TOR" || snap.Events[0].ID != "loss-2024-01-08" {
		t.Fatalf("unexpected backfilled snapshot %+v", snap)
	}
}

func TestSyncerSkipsFailedDays(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	deriver := &fakeDeriver{failOn: map[string]bool{"2024-01-09": true}}
	syncer := newTestSyncer(deriver, rivals.NewMemoryStore("TOR"), nil, writer, SyncConfig{Enabled: true, Days: 2, Interval: time.Nanosecond}, nil)

	syncer.backfill(context.Background(), syncNow)

	if writer.HasSnapshot("2024-01-09") {
		t.Fatalf("expected no snapshot for a failed day")
	}
}

func TestSyncerSkipsWithoutRivals(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	deriver := &fakeDeriver{}
	syncer := newTestSyncer(deriver, rivals.NewMemoryStore(), nil, writer, SyncConfig{Enabled: true, Days: 3}, nil)

	syncer.backfill(context.Background(), syncNow)

	if len(deriver.dates) != 0 {
		t.Fatalf("expected no derivation without rivals, got %v", deriver.dates)
	}
}

func TestSyncerRefreshesTeamsWhenDue(t *testing.T) {
	writer := NewWriter(t.TempDir(), 10000)
	standings := &teststubs.StubProvider{Standings: []teams.Team{
		{Abbreviation: "TOR", Name: "Toronto Maple Leafs"},
		{Abbreviation: "BOS", Name: "Boston Bruins"},
		{Abbreviation: "TOR", Name: "Toronto Maple Leafs"},
	}}
	teamStore := &recordingTeamStore{}
	syncer := newTestSyncer(nil, nil, standings, writer, SyncConfig{Enabled: true, TeamsRefreshDays: 7}, teamStore)

	syncer.syncTeams(context.Background(), syncNow)
	if len(teamStore.items) != 2 || teamStore.items[0].Abbreviation != "BOS" {
		t.Fatalf("expected deduped sorted teams, got %+v", teamStore.items)
	}
	if _, err := NewFSStore(writer.BasePath()).LoadTeams("2024-01-10"); err != nil {
		t.Fatalf("expected teams snapshot, got %v", err)
	}

	calls := standings.Calls.Load()
	syncer.syncTeams(context.Background(), syncNow.Add(time.Hour))
	if standings.Calls.Load() != calls {
		t.Fatalf("expected no refresh before the interval elapses")
	}
}

func TestSyncerSkipsWhenDisabledOrNil(t *testing.T) {
	s := NewSyncer(nil, nil, nil, nil, SyncConfig{Enabled: false}, nil, nil, nil)
	s.Run(context.Background())

	s = NewSyncer(nil, nil, nil, nil, SyncConfig{Enabled: true}, nil, nil, nil)
	s.Run(context.Background())

	var nilSyncer *Syncer
	nilSyncer.Run(context.Background())
}

func TestNewSyncerAppliesDefaults(t *testing.T) {
	s := NewSyncer(nil, nil, nil, nil, SyncConfig{DailyHourUTC: 42}, nil, nil, nil)
	if s.cfg.Days != 7 || s.cfg.Interval <= 0 || s.cfg.DailyHourUTC != 9 || s.cfg.TeamsRefreshDays != 7 || s.loc != time.UTC {
		t.Fatalf("unexpected defaults %+v", s.cfg)
	}
}

func TestSyncerSleepRespectsContext(t *testing.T) {
	s := NewSyncer(nil, nil, nil, nil, SyncConfig{Enabled: true}, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	s.sleep(ctx, time.Second)
	if time.Since(start) > 50*time.Millisecond {
		t.Fatalf("expected sleep to return quickly when context canceled")
	}
}

func TestSyncerDailyStopsOnCancel(t *testing.T) {
	s := NewSyncer(nil, nil, nil, NewWriter(t.TempDir(), 10000), SyncConfig{Enabled: true}, nil, nil, nil)
	s.newTicker = func(time.Duration) *time.Ticker { return time.NewTicker(time.Millisecond) }
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.daily(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("expected daily loop to exit on cancel")
	}
}
