package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/enform/pkg/domain"
)

// Store implements ports.SnapshotStore using the local filesystem.
// Each step key becomes one JSON file in the configured directory.
type Store struct {
	BasePath string
}

// New creates a Store with the given base path.
// If basePath is empty, it defaults to ".enform/snapshots".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".enform", "snapshots")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.BasePath, key+".json")
}

// Save persists the snapshot to a JSON file atomically: write to a temp
// file in the same directory, fsync, then rename over the destination.
func (s *Store) Save(ctx context.Context, key string, snap domain.Snapshot) error {
	if key == "" {
		return fmt.Errorf("snapshot key cannot be empty")
	}

	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+key+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path(key)); err != nil {
		return fmt.Errorf("failed to rename temp file into place: %w", err)
	}
	return nil
}

// Load reads and parses the snapshot file for the key.
func (s *Store) Load(ctx context.Context, key string) (domain.Snapshot, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	return snap, nil
}

// Delete removes the snapshot file. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove snapshot file: %w", err)
	}
	return nil
}

// List returns every key with a snapshot file in the base directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, "tmp-") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
