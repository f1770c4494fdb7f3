package rivals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps the rival set as a JSON array on disk. Writes go through a temp file
// and rename so readers never see a partial file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore stores the set as a JSON array at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns an empty set when the file does not exist yet.
func (f *FileStore) Load(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rivals file: %w", err)
	}
	var rivals []string
	if err := json.Unmarshal(data, &rivals); err != nil {
		return []string{}, nil
	}
	return Normalize(rivals), nil
}

// Save writes the normalized set.
func (f *FileStore) Save(_ context.Context, rivals []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(Normalize(rivals))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create rivals dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".rivals-*.json")
	if err != nil {
		return fmt.Errorf("create temp rivals file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write rivals file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close rivals file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace rivals file: %w", err)
	}
	return nil
}
