package snapshots

import (
	"fmt"
	"path/filepath"
)

// EventsSnapshotPath builds the path to an events snapshot for a given date.
func EventsSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, string(kindEvents), fmt.Sprintf("%s.json", date))
}

// TeamsSnapshotPath builds the path to a teams snapshot for a given date.
func TeamsSnapshotPath(basePath, date string) string {
	return filepath.Join(basePath, string(kindTeams), fmt.Sprintf("%s.json", date))
}
