package snapshots

import (
	"encoding/json"
	"errors"
	"os"
)

// Store defines how snapshots are loaded.
type Store interface {
	LoadEvents(date string) (EventsSnapshot, error)
	LoadManifest() (Manifest, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadEvents reads the events snapshot for date (YYYY-MM-DD) from
// {basePath}/events/{date}.json.
func (s *FSStore) LoadEvents(date string) (EventsSnapshot, error) {
	if s == nil {
		return EventsSnapshot{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return EventsSnapshot{}, errors.New("snapshot date required")
	}
	var payload EventsSnapshot
	if err := decodeFile(EventsSnapshotPath(s.basePath, date), &payload); err != nil {
		return EventsSnapshot{}, err
	}
	if payload.Date == "" {
		payload.Date = date
	}
	return payload, nil
}

// LoadTeams reads the teams snapshot for date.
func (s *FSStore) LoadTeams(date string) (TeamsSnapshot, error) {
	if s == nil {
		return TeamsSnapshot{}, errors.New("snapshot store not configured")
	}
	var payload TeamsSnapshot
	if err := decodeFile(TeamsSnapshotPath(s.basePath, date), &payload); err != nil {
		return TeamsSnapshot{}, err
	}
	return payload, nil
}

// LoadManifest reads the manifest listing the stored dates.
func (s *FSStore) LoadManifest() (Manifest, error) {
	if s == nil {
		return Manifest{}, errors.New("snapshot store not configured")
	}
	var m Manifest
	if err := decodeFile(manifestPath(s.basePath), &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func decodeFile(path string, payload any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(payload)
}
