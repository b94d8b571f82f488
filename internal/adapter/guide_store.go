package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

const indexFileName = "index.json"

// GuideStore persists generated guide documents: one JSON file per type plus
// an index mapping type names to files. The engine never touches the store.
type GuideStore interface {
	// SaveGuide writes one guide document and returns its file name within
	// the directory.
	SaveGuide(ctx context.Context, dir m.Path, guide *m.Guide) (string, error)
	// LoadGuide reads one guide document back through the directory index.
	LoadGuide(ctx context.Context, dir m.Path, t m.TypeName) (*m.Guide, error)
	SaveIndex(ctx context.Context, dir m.Path, index *m.GuideIndex) error
	LoadIndex(ctx context.Context, dir m.Path) (*m.GuideIndex, error)
	// MergeShards folds shard_* subdirectories produced by sharded runs into
	// the directory itself.
	MergeShards(ctx context.Context, dir m.Path) error
}

type localGuideStore struct{}

// NewLocalGuideStore creates a GuideStore backed by the local filesystem.
func NewLocalGuideStore() GuideStore {
	return &localGuideStore{}
}

// SaveGuide implements GuideStore.
func (s *localGuideStore) SaveGuide(ctx context.Context, dir m.Path, guide *m.Guide) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create guide directory: %w", err)
	}

	data, err := json.MarshalIndent(guide, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode guide for %q: %w", guide.Type, err)
	}

	file := guideFileName(guide.Type)

	if err := os.WriteFile(filepath.Join(string(dir), file), data, 0o600); err != nil {
		return "", fmt.Errorf("write guide file: %w", err)
	}

	return file, nil
}

// LoadGuide implements GuideStore.
func (s *localGuideStore) LoadGuide(ctx context.Context, dir m.Path, t m.TypeName) (*m.Guide, error) {
	index, err := s.LoadIndex(ctx, dir)
	if err != nil {
		return nil, err
	}

	file, ok := index.Files[t]
	if !ok {
		return nil, fmt.Errorf("no guide generated for type %q", t)
	}

	data, err := os.ReadFile(filepath.Join(string(dir), file))
	if err != nil {
		return nil, fmt.Errorf("read guide file: %w", err)
	}

	guide := &m.Guide{Type: t}
	if err := json.Unmarshal(data, guide); err != nil {
		return nil, fmt.Errorf("decode guide file %q: %w", file, err)
	}

	return guide, nil
}

// SaveIndex implements GuideStore.
func (s *localGuideStore) SaveIndex(ctx context.Context, dir m.Path, index *m.GuideIndex) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create guide directory: %w", err)
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("encode guide index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(string(dir), indexFileName), data, 0o600); err != nil {
		return fmt.Errorf("write guide index: %w", err)
	}

	return nil
}

// LoadIndex implements GuideStore.
func (s *localGuideStore) LoadIndex(ctx context.Context, dir m.Path) (*m.GuideIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(string(dir), indexFileName))
	if err != nil {
		return nil, fmt.Errorf("read guide index: %w", err)
	}

	var index m.GuideIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("decode guide index: %w", err)
	}

	return &index, nil
}

// MergeShards implements GuideStore. Guide files move from each shard
// directory into the target; indexes are folded together, keeping the last
// shard's snapshot digest and warning when shards disagree.
func (s *localGuideStore) MergeShards(ctx context.Context, dir m.Path) error {
	shardDirs, err := filepath.Glob(filepath.Join(string(dir), "shard_*"))
	if err != nil {
		return fmt.Errorf("scan shard directories: %w", err)
	}

	if len(shardDirs) == 0 {
		return fmt.Errorf("no shard directories found in %q", dir)
	}

	merged := &m.GuideIndex{Files: make(map[m.TypeName]string)}

	for _, shardDir := range shardDirs {
		index, err := s.LoadIndex(ctx, m.Path(shardDir))
		if err != nil {
			return fmt.Errorf("load shard index from %q: %w", shardDir, err)
		}

		if merged.SnapshotDigest != "" && merged.SnapshotDigest != index.SnapshotDigest {
			slog.Warn("merging shards generated from different snapshots",
				"dir", shardDir, "digest", index.SnapshotDigest, "previous", merged.SnapshotDigest)
		}

		merged.SnapshotDigest = index.SnapshotDigest

		if index.GeneratedAt.After(merged.GeneratedAt) {
			merged.GeneratedAt = index.GeneratedAt
		}

		for t, file := range index.Files {
			src := filepath.Join(shardDir, file)
			dst := filepath.Join(string(dir), file)

			if err := os.Rename(src, dst); err != nil {
				return fmt.Errorf("move guide file %q: %w", src, err)
			}

			merged.Files[t] = file
		}

		if err := os.RemoveAll(shardDir); err != nil {
			return fmt.Errorf("remove shard directory %q: %w", shardDir, err)
		}
	}

	if err := s.SaveIndex(ctx, dir, merged); err != nil {
		return err
	}

	slog.Info("merged shard guides", "dir", dir, "shards", len(shardDirs), "types", len(merged.Files))

	return nil
}

// guideFileName sanitizes a type name into a file name; path separators and
// other unsafe characters collapse to underscores.
func guideFileName(t m.TypeName) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, string(t))

	return mapped + ".json"
}
