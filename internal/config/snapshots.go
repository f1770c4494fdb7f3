package config

import "time"

// SnapshotSyncConfig controls snapshot writing, backfill and pruning.
type SnapshotSyncConfig struct {
	Enabled          bool          // write poller snapshots at all
	SyncEnabled      bool          // run the background backfill
	Days             int           // how many past days to maintain
	Interval         time.Duration // delay between backfill fetches
	DailyHourUTC     int           // hour of day (0-23) for daily backfill
	RetentionDays    int
	TeamsRefreshDays int
	SnapshotFolder   string
	AdminToken       string // guards the refresh endpoint; empty disables it
}

func loadSnapshotSync() SnapshotSyncConfig {
	return SnapshotSyncConfig{
		Enabled:          boolEnvOrDefault(envSnapshotOn, defaultSnapshotEnabled),
		SyncEnabled:      boolEnvOrDefault(envSnapshotSync, defaultSnapshotSync),
		Days:             intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
		Interval:         durationEnvOrDefault(envSnapshotRate, defaultSnapshotInterval),
		DailyHourUTC:     hourEnvOrDefault(envSnapshotHour, defaultSnapshotDailyHour),
		RetentionDays:    intEnvOrDefault(envSnapshotKeep, defaultSnapshotRetention),
		TeamsRefreshDays: intEnvOrDefault(envTeamsRefresh, defaultTeamsRefreshDays),
		SnapshotFolder:   envOrDefault(envSnapshotFolder, defaultSnapshotFolder),
		AdminToken:       envOrDefault(envAdminToken, ""),
	}
}
