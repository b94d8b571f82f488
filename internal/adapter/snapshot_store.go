package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// SnapshotStore persists registry snapshots as local JSON files for offline
// runs.
type SnapshotStore interface {
	LoadSnapshot(ctx context.Context, path m.Path) (*m.Snapshot, error)
	SaveSnapshot(ctx context.Context, path m.Path, snapshot *m.Snapshot) error
}

type localSnapshotStore struct{}

// NewLocalSnapshotStore creates a SnapshotStore backed by the local
// filesystem.
func NewLocalSnapshotStore() SnapshotStore {
	return &localSnapshotStore{}
}

// LoadSnapshot implements SnapshotStore.
func (s *localSnapshotStore) LoadSnapshot(ctx context.Context, path m.Path) (*m.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snapshot m.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot file %q: %w", path, err)
	}

	return &snapshot, nil
}

// SaveSnapshot implements SnapshotStore.
func (s *localSnapshotStore) SaveSnapshot(ctx context.Context, path m.Path, snapshot *m.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}
