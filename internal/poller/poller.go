package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/metrics"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
)

const defaultInterval = 2 * time.Minute

// FeedDeriver derives the negative event feed for a rival set.
type FeedDeriver interface {
	Derive(ctx context.Context, rivals []string, days int) events.Feed
}

// FeedStore holds the latest feed for readers.
type FeedStore interface {
	SetFeed(events.Feed)
}

// SnapshotWriter persists event snapshots to disk.
type SnapshotWriter interface {
	WriteEventsSnapshot(date string, snapshot snapshots.EventsSnapshot) error
}

// Poller refreshes the rival feed on an interval, publishes it to the store and writes
// a snapshot per successfully scanned day.
type Poller struct {
	deriver  FeedDeriver
	rivals   rivals.Store
	store    FeedStore
	writer   SnapshotWriter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	days     int
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults. writer may be nil to disable snapshots.
func New(deriver FeedDeriver, rivalStore rivals.Store, store FeedStore, writer SnapshotWriter, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration, days int) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if days <= 0 {
		days = events.DefaultLookbackDays
	}
	return &Poller{
		deriver:  deriver,
		rivals:   rivalStore,
		store:    store,
		writer:   writer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		days:     days,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		logging.Info(p.logger, "poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		p.fetchOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "poller stopped")
				return
			case <-p.ticker.C:
				p.fetchOnce(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop(_ context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// fetchOnce fails only when the rival set cannot be read or every scanned day failed.
// A failed cycle leaves the previously stored feed in place.
func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	feed, err := p.refresh(ctx)
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "poller refresh failed", err, logging.FieldDurationMS, elapsed.Milliseconds())
		p.recordFailure(err, start)
		return
	}

	p.recordSuccess(start)
	logging.Info(p.logger, "poller refreshed feed",
		logging.FieldCount, len(feed.Events),
		"rivals", len(feed.Rivals),
		"failed_days", len(feed.FailedDays),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) refresh(ctx context.Context) (events.Feed, error) {
	rivalSet, err := p.rivals.Load(ctx)
	if err != nil {
		return events.Feed{}, fmt.Errorf("load rivals: %w", err)
	}

	feed := p.deriver.Derive(ctx, rivalSet, p.days)
	if len(feed.Days) > 0 && len(feed.FailedDays) == len(feed.Days) {
		return feed, fmt.Errorf("all %d days failed", len(feed.Days))
	}
	if p.store != nil {
		p.store.SetFeed(feed)
	}
	p.writeSnapshots(feed)
	return feed, nil
}

func (p *Poller) writeSnapshots(feed events.Feed) {
	if p.writer == nil || len(feed.Rivals) == 0 {
		return
	}
	for _, day := range feed.Days {
		if day.Failed() {
			continue
		}
		snap := snapshots.FromDay(day, feed.Rivals, feed.GeneratedAt)
		if err := p.writer.WriteEventsSnapshot(day.Date, snap); err != nil {
			logging.Error(p.logger, "poller snapshot write failed", err, logging.FieldDate, day.Date)
		}
	}
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
