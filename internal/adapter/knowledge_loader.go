package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// KnowledgeLoader reads the static knowledge base from disk. A missing file
// is not an error: runs without a knowledge base are the common case.
type KnowledgeLoader interface {
	LoadKnowledge(ctx context.Context, path m.Path) (*m.KnowledgeFile, error)
}

type localKnowledgeLoader struct{}

// NewLocalKnowledgeLoader creates a KnowledgeLoader backed by the local
// filesystem.
func NewLocalKnowledgeLoader() KnowledgeLoader {
	return &localKnowledgeLoader{}
}

// LoadKnowledge implements KnowledgeLoader.
func (l *localKnowledgeLoader) LoadKnowledge(ctx context.Context, path m.Path) (*m.KnowledgeFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(string(path))
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no knowledge base file", "path", path)
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read knowledge file: %w", err)
	}

	var file m.KnowledgeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse knowledge file %q: %w", path, err)
	}

	slog.Debug("loaded knowledge base", "path", path,
		"exact_types", len(file.ExactTypes),
		"record_fields", len(file.RecordFields),
		"signature_elements", len(file.SignatureElements))

	return &file, nil
}
