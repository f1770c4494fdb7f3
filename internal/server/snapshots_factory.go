package server

import (
	"log/slog"
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/config"
	"github.com/rivalwatch/rival-watch-service/internal/providers"
	"github.com/rivalwatch/rival-watch-service/internal/rivals"
	"github.com/rivalwatch/rival-watch-service/internal/snapshots"
)

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer // nil when snapshots are disabled
	syncer *snapshots.Syncer
}

// buildSnapshots wires the snapshot reader, writer and syncer. The syncer is started by Run.
func buildSnapshots(cfg config.Config, deriver snapshots.DayDeriver, rivalStore rivals.Store, standings providers.StandingsProvider, teamStore snapshots.TeamStore, loc *time.Location, logger *slog.Logger) snapshotComponents {
	basePath := cfg.Snapshots.SnapshotFolder
	components := snapshotComponents{store: snapshots.NewFSStore(basePath)}
	if !cfg.Snapshots.Enabled {
		return components
	}

	components.writer = snapshots.NewWriter(basePath, cfg.Snapshots.RetentionDays)
	components.syncer = snapshots.NewSyncer(deriver, rivalStore, standings, components.writer, snapshots.SyncConfig{
		Enabled:          cfg.Snapshots.SyncEnabled,
		Days:             cfg.Snapshots.Days,
		Interval:         cfg.Snapshots.Interval,
		DailyHourUTC:     cfg.Snapshots.DailyHourUTC,
		TeamsRefreshDays: cfg.Snapshots.TeamsRefreshDays,
	}, loc, logger, teamStore)
	return components
}
