package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"mutapath.dev/pkg/mutapath/internal/adapter"
	"mutapath.dev/pkg/mutapath/internal/controller"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

// GenerateArgs configures one generate run.
type GenerateArgs struct {
	Patterns        []string
	Exclude         []string
	Output          m.Path
	SnapshotFile    m.Path
	KnowledgeFile   m.Path
	Threads         int
	MaxDepth        int
	ShardIndex      int
	TotalShardCount int
}

// ListArgs configures a list run.
type ListArgs struct {
	Patterns      []string
	Exclude       []string
	SnapshotFile  m.Path
	KnowledgeFile m.Path
	MaxDepth      int
}

// ViewArgs selects one previously generated guide.
type ViewArgs struct {
	Type   m.TypeName
	Output m.Path
}

// FetchArgs configures a snapshot fetch.
type FetchArgs struct {
	SnapshotFile m.Path
}

// MergeArgs selects the guide directory whose shard subdirectories are merged.
type MergeArgs struct {
	Output m.Path
}

// Workflow wires the path engine to its collaborators: the registry source,
// the guide store, the knowledge loader and the UI.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Fetch(ctx context.Context, args FetchArgs) (string, error)
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	adapter.RegistrySource
	adapter.SnapshotStore
	adapter.GuideStore
	adapter.KnowledgeLoader
	controller.UI
}

// NewWorkflow creates a Workflow with the provided collaborators.
func NewWorkflow(
	registry adapter.RegistrySource,
	snapshots adapter.SnapshotStore,
	guides adapter.GuideStore,
	knowledge adapter.KnowledgeLoader,
	ui controller.UI,
) Workflow {
	return &workflow{
		RegistrySource:  registry,
		SnapshotStore:   snapshots,
		GuideStore:      guides,
		KnowledgeLoader: knowledge,
		UI:              ui,
	}
}

// Generate runs one engine pass per selected type, bounded by args.Threads.
// Each pass is single-threaded; the snapshot and knowledge base are read-only
// for the duration of the run. A schema error aborts its type only; an
// invalid-state error aborts the whole run.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	if err := w.Start(ctx, controller.WithGenerateMode()); err != nil {
		slog.Error("failed to start UI", "error", err)
		return err
	}

	defer w.Close(ctx)

	snapshot, digest, err := w.resolveSnapshot(ctx, args.SnapshotFile)
	if err != nil {
		return err
	}

	knowledge, err := w.loadKnowledge(ctx, args.KnowledgeFile)
	if err != nil {
		return err
	}

	selected := selectTypes(snapshot, args.Patterns, args.Exclude)
	selected = shardTypes(selected, args.ShardIndex, args.TotalShardCount)

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	shardCount := args.TotalShardCount
	if shardCount < 1 {
		shardCount = 1
	}

	output := shardOutput(args.Output, args.ShardIndex, args.TotalShardCount)

	w.DisplayRunPlan(ctx, m.RunPlan{
		SnapshotDigest: digest,
		Types:          len(selected),
		Threads:        threads,
		ShardIndex:     args.ShardIndex,
		ShardCount:     shardCount,
	})

	engine := NewPathEngine(snapshot, knowledge, args.MaxDepth)
	started := time.Now()

	var (
		mu    sync.Mutex
		stats m.RunStats
		files = make(map[m.TypeName]string)
	)

	workers := make(chan int, threads)
	for i := 0; i < threads; i++ {
		workers <- i
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, name := range selected {
		group.Go(func() error {
			workerID := <-workers
			defer func() { workers <- workerID }()

			w.DisplayTypeStarted(groupCtx, name, workerID)

			summary, file, err := w.generateOne(groupCtx, engine, snapshot, output, name)
			if err != nil {
				return err
			}

			mu.Lock()
			if summary.Error != "" {
				stats.Failed++
			} else {
				stats.Generated++
				stats.Paths += summary.Paths
				files[name] = file
			}
			mu.Unlock()

			w.DisplayTypeFinished(groupCtx, summary)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		slog.Error("generate run aborted", "error", err)
		return err
	}

	index := &m.GuideIndex{SnapshotDigest: digest, GeneratedAt: time.Now().UTC(), Files: files}
	if err := w.SaveIndex(ctx, output, index); err != nil {
		return fmt.Errorf("save guide index: %w", err)
	}

	stats.Duration = time.Since(started)

	if err := w.DisplayRunSummary(ctx, stats); err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

// generateOne runs one pass. Schema errors are demoted to a per-type failure
// summary; anything else (notably invalid state) propagates and kills the run.
func (w *workflow) generateOne(ctx context.Context, engine PathEngine, snapshot *m.Snapshot, output m.Path, name m.TypeName) (m.TypeSummary, string, error) {
	guide, err := engine.Generate(ctx, name)
	if err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			slog.Warn("skipping type with malformed schema", "type", name, "error", err)
			return m.TypeSummary{Type: name, Error: schemaErr.Detail}, "", nil
		}

		return m.TypeSummary{}, "", err
	}

	file, err := w.SaveGuide(ctx, output, guide)
	if err != nil {
		return m.TypeSummary{}, "", fmt.Errorf("save guide for %q: %w", name, err)
	}

	return guide.Summary(kindOf(snapshot, name)), file, nil
}

// List summarizes the selected types without persisting anything.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}

	defer w.Close(ctx)

	snapshot, digest, err := w.resolveSnapshot(ctx, args.SnapshotFile)
	if err != nil {
		return err
	}

	knowledge, err := w.loadKnowledge(ctx, args.KnowledgeFile)
	if err != nil {
		return err
	}

	engine := NewPathEngine(snapshot, knowledge, args.MaxDepth)
	selected := selectTypes(snapshot, args.Patterns, args.Exclude)
	summaries := make([]m.TypeSummary, 0, len(selected))

	for _, name := range selected {
		guide, err := engine.Generate(ctx, name)
		if err != nil {
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				return err
			}

			summaries = append(summaries, m.TypeSummary{Type: name, Error: schemaErr.Detail})

			continue
		}

		summaries = append(summaries, guide.Summary(kindOf(snapshot, name)))
	}

	if err := w.DisplayTypeList(ctx, digest, summaries); err != nil {
		return err
	}

	w.Wait(ctx)

	return nil
}

// View loads and displays one previously generated guide.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	guide, err := w.LoadGuide(ctx, args.Output, args.Type)
	if err != nil {
		return fmt.Errorf("load guide for %q: %w", args.Type, err)
	}

	return w.DisplayGuide(ctx, guide)
}

// Fetch retrieves the registry snapshot and saves it for offline runs,
// returning its digest.
func (w *workflow) Fetch(ctx context.Context, args FetchArgs) (string, error) {
	snapshot, err := w.FetchSnapshot(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("fetch snapshot: %w", err)
	}

	if err := w.SaveSnapshot(ctx, args.SnapshotFile, snapshot); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}

	digest, err := adapter.SnapshotDigest(snapshot)
	if err != nil {
		return "", err
	}

	slog.Info("saved registry snapshot", "file", args.SnapshotFile, "digest", digest, "types", len(snapshot.Types))

	return digest, nil
}

// Merge folds shard guide directories into the output directory.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	return w.MergeShards(ctx, args.Output)
}

func (w *workflow) resolveSnapshot(ctx context.Context, file m.Path) (*m.Snapshot, string, error) {
	var (
		snapshot *m.Snapshot
		err      error
	)

	if file != "" {
		snapshot, err = w.LoadSnapshot(ctx, file)
	} else {
		snapshot, err = w.FetchSnapshot(ctx, nil)
	}

	if err != nil {
		return nil, "", fmt.Errorf("resolve registry snapshot: %w", err)
	}

	digest, err := adapter.SnapshotDigest(snapshot)
	if err != nil {
		return nil, "", err
	}

	return snapshot, digest, nil
}

func (w *workflow) loadKnowledge(ctx context.Context, file m.Path) (KnowledgeBase, error) {
	knowledgeFile, err := w.LoadKnowledge(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	return NewKnowledgeBase(knowledgeFile), nil
}

// selectTypes filters the snapshot's type names by doublestar glob patterns.
// No patterns selects everything; exclude patterns are applied afterwards.
func selectTypes(snapshot *m.Snapshot, patterns, exclude []string) []m.TypeName {
	var selected []m.TypeName

	for _, name := range snapshot.TypeNames() {
		if !matchesAny(patterns, string(name), true) {
			continue
		}

		if matchesAny(exclude, string(name), false) {
			continue
		}

		selected = append(selected, name)
	}

	return selected
}

func matchesAny(patterns []string, name string, emptyMatches bool) bool {
	if len(patterns) == 0 {
		return emptyMatches
	}

	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}

	return false
}

func shardTypes(names []m.TypeName, index, total int) []m.TypeName {
	if total <= 1 {
		return names
	}

	var sharded []m.TypeName

	for i, name := range names {
		if i%total == index {
			sharded = append(sharded, name)
		}
	}

	return sharded
}

func shardOutput(output m.Path, index, total int) m.Path {
	if total <= 1 {
		return output
	}

	return m.Path(fmt.Sprintf("%s/shard_%d", output, index))
}

func kindOf(snapshot *m.Snapshot, name m.TypeName) m.SchemaKind {
	if node, ok := snapshot.Lookup(name); ok {
		return node.Kind
	}

	return ""
}
