package snapshots

import (
	"context"
	"log/slog"
	"time"

	appteams "github.com/rivalwatch/rival-watch-service/internal/app/teams"
	"github.com/rivalwatch/rival-watch-service/internal/domain/teams"
	"github.com/rivalwatch/rival-watch-service/internal/events"
	"github.com/rivalwatch/rival-watch-service/internal/logging"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// DayDeriver derives the negative events of a single date.
type DayDeriver interface {
	DeriveDate(ctx context.Context, rivals []string, date string) events.DayResult
}

// TeamStore receives the teams list when the teams snapshot refreshes.
type TeamStore interface {
	SetTeams([]teams.Team)
}

// Syncer backfills missing event snapshots and refreshes the teams snapshot on a schedule.
type Syncer struct {
	deriver   DayDeriver
	rivals    rivals.Store
	standings providers.StandingsProvider
	writer    *Writer
	cfg       SyncConfig
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	teamStore TeamStore
	newTicker func(time.Duration) *time.Ticker
}

// SyncConfig controls snapshot sync behavior.
type SyncConfig struct {
	Enabled          bool
	Days             int
	Interval         time.Duration
	DailyHourUTC     int
	TeamsRefreshDays int
}

// NewSyncer constructs a snapshot syncer. A nil loc means UTC.
func NewSyncer(deriver DayDeriver, rivalStore rivals.Store, standings providers.StandingsProvider, writer *Writer, cfg SyncConfig, loc *time.Location, logger *slog.Logger, teamStore TeamStore) *Syncer {
	if cfg.Days <= 0 {
		cfg.Days = 7
	}
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	if cfg.DailyHourUTC < 0 || cfg.DailyHourUTC > 23 {
		cfg.DailyHourUTC = 9
	}
	if cfg.TeamsRefreshDays <= 0 {
		cfg.TeamsRefreshDays = 7
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Syncer{
		deriver:   deriver,
		rivals:    rivalStore,
		standings: standings,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		loc:       loc,
		now:       time.Now,
		teamStore: teamStore,
		newTicker: time.NewTicker,
	}
}

// Run refreshes teams and backfills once, then repeats daily at DailyHourUTC.
// Callers should run this in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || !s.cfg.Enabled || s.writer == nil {
		return
	}
	logging.Info(s.logger,
		"snapshot sync starting",
		"past_days", s.cfg.Days,
		"interval", s.cfg.Interval.String(),
		"daily_hour_utc", s.cfg.DailyHourUTC,
		"teams_refresh_days", s.cfg.TeamsRefreshDays,
	)
	s.syncTeams(ctx, s.now())
	s.backfill(ctx, s.now())
	go s.daily(ctx)
}

func (s *Syncer) daily(ctx context.Context) {
	ticker := s.newTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case tick := <-ticker.C:
			if tick.UTC().Hour() == s.cfg.DailyHourUTC {
				current := s.now()
				s.syncTeams(ctx, current)
				s.backfill(ctx, current)
			}
		}
	}
}

func (s *Syncer) backfill(ctx context.Context, now time.Time) {
	if s.deriver == nil || s.rivals == nil {
		return
	}
	rivalSet, err := s.rivals.Load(ctx)
	if err != nil {
		logging.Warn(s.logger, "snapshot sync could not load rivals", "err", err)
		return
	}
	if len(rivalSet) == 0 {
		logging.Info(s.logger, "snapshot sync skipped, no rivals selected")
		return
	}

	dates := s.buildDates(now)
	for i, date := range dates {
		select {
		case <-ctx.Done():
			return
		default:
		}
		s.fetchAndWrite(ctx, date, rivalSet)
		if i < len(dates)-1 {
			s.sleep(ctx, s.cfg.Interval)
		}
	}
}

// buildDates always refreshes yesterday, whose late games may have finished after the
// last poll, and otherwise only fills gaps. Today belongs to the poller.
func (s *Syncer) buildDates(now time.Time) []string {
	today := timeutil.CalendarDate(now, s.loc)
	dates := []string{timeutil.FormatDate(today.AddDate(0, 0, -1))}
	for i := 2; i < s.cfg.Days; i++ {
		date := timeutil.FormatDate(today.AddDate(0, 0, -i))
		if !s.writer.HasSnapshot(date) {
			dates = append(dates, date)
		}
	}
	return dates
}

func (s *Syncer) fetchAndWrite(ctx context.Context, date string, rivalSet []string) {
	start := time.Now()
	day := s.deriver.DeriveDate(ctx, rivalSet, date)
	if day.Failed() {
		logging.Warn(s.logger, "snapshot sync fetch failed", logging.FieldDate, date, "err", day.Err)
		return
	}
	if err := s.writer.WriteEventsSnapshot(date, FromDay(day, rivalSet, s.now())); err != nil {
		logging.Warn(s.logger, "snapshot sync write failed", logging.FieldDate, date, "err", err)
		return
	}
	logging.Info(s.logger, "snapshot written",
		logging.FieldDate, date,
		logging.FieldCount, len(day.Events),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) syncTeams(ctx context.Context, now time.Time) {
	if s.standings == nil || !s.shouldRefreshTeams(now) {
		return
	}
	start := time.Now()
	standings, err := s.standings.FetchStandings(ctx)
	if err != nil {
		logging.Warn(s.logger, "teams snapshot fetch failed", "err", err)
		return
	}
	items := appteams.Dedupe(standings)
	date := timeutil.DateIn(now, s.loc)
	if err := s.writer.WriteTeamsSnapshot(date, TeamsSnapshot{Date: date, Teams: items}); err != nil {
		logging.Warn(s.logger, "teams snapshot write failed", "err", err)
		return
	}
	if s.teamStore != nil {
		s.teamStore.SetTeams(items)
	}
	logging.Info(s.logger, "teams snapshot written",
		logging.FieldCount, len(items),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (s *Syncer) shouldRefreshTeams(now time.Time) bool {
	m, _ := readManifest(manifestPath(s.writer.basePath), s.writer.retentionDays)
	if m.Teams.LastRefreshed.IsZero() {
		return true
	}
	next := m.Teams.LastRefreshed.AddDate(0, 0, s.cfg.TeamsRefreshDays)
	return !now.Before(next)
}

func (s *Syncer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
