package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	m "mutapath.dev/pkg/mutapath/internal/model"
	"mutapath.dev/pkg/mutapath/pkg"
)

// DefaultMaxDepth is the recursion depth cap used when no explicit limit is
// configured. It bounds termination over cyclic or self-referential type
// graphs.
const DefaultMaxDepth = 10

// PathEngine builds the mutation-path catalogue for one requested type per
// call. A pass is single-threaded and depth-first; the engine itself holds
// only read-only state, so one engine may serve concurrent passes for
// distinct types.
type PathEngine interface {
	// Paths runs one pass and returns the discriminated path items, root
	// examples resolved.
	Paths(ctx context.Context, t m.TypeName) ([]m.PathItem, error)
	// Generate runs one pass and formats the result as the output document.
	Generate(ctx context.Context, t m.TypeName) (*m.Guide, error)
}

type pathEngine struct {
	snapshot  *m.Snapshot
	knowledge KnowledgeBase
	maxDepth  int
}

// NewPathEngine constructs a PathEngine over a registry snapshot and a
// knowledge base. A maxDepth of zero or less falls back to DefaultMaxDepth.
func NewPathEngine(snapshot *m.Snapshot, knowledge KnowledgeBase, maxDepth int) PathEngine {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	if knowledge == nil {
		knowledge = NewKnowledgeBase(nil)
	}

	return &pathEngine{
		snapshot:  snapshot,
		knowledge: knowledge,
		maxDepth:  maxDepth,
	}
}

// buildContext is the immutable-by-convention recursion cursor: the rendered
// path so far, the step that reached the current node, the recursion depth,
// the chain of variant selections crossed so far, and the knowledge lookup
// scope set by the parent node.
type buildContext struct {
	path  string
	kind  m.PathKind
	depth int
	chain []m.VariantSelection
	scope lookupScope
}

// lookupScope identifies where in the parent node the current node sits, so
// knowledge overrides apply only within their declared scope.
type lookupScope struct {
	parent m.TypeName
	sigKey string
	index  int
}

func rootContext(t m.TypeName) buildContext {
	return buildContext{kind: m.RootValue{Type: t}}
}

func (c buildContext) intoField(parent m.TypeName, field m.SchemaField) buildContext {
	step := m.RecordField{Name: field.Name, Type: field.Type}

	return buildContext{
		path:  c.path + step.Segment(),
		kind:  step,
		depth: c.depth + 1,
		chain: c.chain,
		scope: lookupScope{parent: parent},
	}
}

func (c buildContext) intoIndex(parent m.TypeName, index int, element m.TypeName) buildContext {
	step := m.IndexedElement{Index: index, Type: element}

	return buildContext{
		path:  c.path + step.Segment(),
		kind:  step,
		depth: c.depth + 1,
		chain: c.chain,
		scope: lookupScope{parent: parent},
	}
}

func (c buildContext) intoEntry(parent m.TypeName, role m.MapRole, target m.TypeName) buildContext {
	step := m.MapEntry{Role: role, Type: target}

	return buildContext{
		path:  c.path + step.Segment(),
		kind:  step,
		depth: c.depth + 1,
		chain: c.chain,
		scope: lookupScope{parent: parent},
	}
}

// intoOption descends into an option's element: the path does not grow
// because the element occupies the same location, but the depth still
// increments to guard against self-referential cycles through options.
func (c buildContext) intoOption() buildContext {
	next := c
	next.depth++

	return next
}

// pathEntry is the engine-internal mutation path record; enum is nil for
// locations reachable without any variant selection.
type pathEntry struct {
	record m.MutationPathRecord
	enum   *enumEntryData
}

type enumEntryData struct {
	chain      []m.VariantSelection
	applicable []m.VariantName
}

// chainExample is one bottom-up chain-to-example mapping entry: either the
// value that realizes the chain at the current node's level, or the reason no
// such value exists.
type chainExample struct {
	chain  m.VariantChain
	value  any
	reason string
}

type chainMap = pkg.OrderedMap[string, chainExample]

// buildResult flows upward out of every builder: the node's path entries, its
// representative example, whether that example is a fully-specified value,
// the aggregated mutability, and the chain-to-example mapping of every
// variant chain reachable in the subtree.
type buildResult struct {
	entries    []*pathEntry
	example    m.Example
	complete   bool
	mutability m.Mutability
	chains     chainMap
}

// build dispatches one schema node to its structural builder. The knowledge
// base is consulted for every node; an override replaces the node's own
// example and classification while descendant entries keep their own.
func (e *pathEngine) build(ctx buildContext, t m.TypeName) (buildResult, error) {
	if ctx.depth > e.maxDepth {
		res := e.blockedResult(ctx, t, fmt.Sprintf("recursion limit of %d exceeded at type %q", e.maxDepth, t))
		e.applyOverride(ctx, t, &res)

		return res, nil
	}

	node, ok := e.snapshot.Lookup(t)
	if !ok {
		res := e.blockedResult(ctx, t, fmt.Sprintf("type %q is not registered in the schema", t))
		e.applyOverride(ctx, t, &res)

		return res, nil
	}

	var (
		res buildResult
		err error
	)

	switch node.Kind {
	case m.KindValue:
		res = e.buildValue(ctx, t, node)
	case m.KindStruct:
		res, err = e.buildStruct(ctx, t, node)
	case m.KindTuple:
		res, err = e.buildTuple(ctx, t, node)
	case m.KindArray:
		res, err = e.buildArray(ctx, t, node)
	case m.KindList:
		res, err = e.buildList(ctx, t, node)
	case m.KindMap:
		res, err = e.buildMap(ctx, t, node)
	case m.KindSet:
		res, err = e.buildSet(ctx, t, node)
	case m.KindOption:
		res, err = e.buildOption(ctx, t, node)
	case m.KindEnum:
		res, err = e.buildEnum(ctx, t, node)
	default:
		return buildResult{}, schemaErrorf(t, "unknown schema kind %q", node.Kind)
	}

	if err != nil {
		return buildResult{}, err
	}

	e.applyOverride(ctx, t, &res)

	return res, nil
}

// lookupOverride resolves the most specific knowledge override for the
// current node: variant-signature element, then record field, then exact
// type.
func (e *pathEngine) lookupOverride(ctx buildContext, t m.TypeName) (any, bool) {
	if ctx.scope.sigKey != "" {
		if value, ok := e.knowledge.SignatureElement(ctx.scope.parent, ctx.scope.sigKey, ctx.scope.index); ok {
			return value, true
		}
	}

	if step, ok := ctx.kind.(m.RecordField); ok && ctx.scope.parent != "" && ctx.scope.sigKey == "" {
		if value, ok := e.knowledge.RecordField(ctx.scope.parent, step.Name); ok {
			return value, true
		}
	}

	return e.knowledge.ExactType(t)
}

func (e *pathEngine) applyOverride(ctx buildContext, t m.TypeName, res *buildResult) {
	value, ok := e.lookupOverride(ctx, t)
	if !ok {
		return
	}

	res.example = m.ExampleOf(value)
	res.complete = true
	res.mutability = m.Mutable{}

	for _, entry := range res.entries {
		if entry.record.Path != ctx.path {
			continue
		}

		entry.record.Example = m.ExampleOf(value)
		entry.record.Mutability = m.Mutable{}
	}
}

// blockedResult classifies a whole subtree as not mutable with one entry at
// its location; used for depth truncation and unresolvable types.
func (e *pathEngine) blockedResult(ctx buildContext, t m.TypeName, reason string) buildResult {
	mut := m.NotMutable{Reason: reason}
	entry := newEntry(ctx, t, describeLocation(ctx, t), m.ExampleUnavailable{}, mut)

	return buildResult{
		entries:    []*pathEntry{entry},
		example:    m.ExampleUnavailable{},
		mutability: mut,
		chains:     pkg.NewOrderedMap[string, chainExample](),
	}
}

// newEntry creates a path entry at the context's location. Entries created
// under at least one variant selection carry enum data with a copy of the
// chain. A not-mutable entry never carries a value example.
func newEntry(ctx buildContext, t m.TypeName, desc string, example m.Example, mut m.Mutability) *pathEntry {
	if _, blocked := mut.(m.NotMutable); blocked {
		example = m.ExampleUnavailable{}
	}

	entry := &pathEntry{
		record: m.MutationPathRecord{
			Path:        ctx.path,
			Type:        t,
			Kind:        ctx.kind,
			Description: desc,
			Example:     example,
			Mutability:  mut,
		},
	}

	if len(ctx.chain) > 0 {
		entry.enum = &enumEntryData{chain: cloneSelections(ctx.chain)}
	}

	return entry
}

func describeLocation(ctx buildContext, t m.TypeName) string {
	switch step := ctx.kind.(type) {
	case m.RecordField:
		return fmt.Sprintf("Mutate field `%s` of %s", step.Name, ctx.scope.parent)
	case m.IndexedElement:
		return fmt.Sprintf("Mutate element %d of %s", step.Index, ctx.scope.parent)
	case m.MapEntry:
		return fmt.Sprintf("Mutate the %s of a %s entry", step.Role, ctx.scope.parent)
	default:
		return fmt.Sprintf("Replace the entire %s value", t)
	}
}

// Paths implements PathEngine.
func (e *pathEngine) Paths(ctx context.Context, t m.TypeName) ([]m.PathItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, ok := e.snapshot.Lookup(t); !ok {
		return nil, schemaErrorf(t, "type is not registered in the schema")
	}

	slog.Debug("building mutation paths", "type", t)

	res, err := e.build(rootContext(t), t)
	if err != nil {
		return nil, err
	}

	items := make([]m.PathItem, 0, len(res.entries))

	for _, entry := range res.entries {
		if entry.enum == nil {
			items = append(items, &m.PlainPath{MutationPathRecord: entry.record})
			continue
		}

		data := m.EnumPathData{
			Chain:              entry.enum.chain,
			ApplicableVariants: entry.enum.applicable,
		}

		if len(entry.enum.chain) > 0 {
			key := selectionKey(entry.enum.chain)

			ce, ok := res.chains.Get(key)
			if !ok {
				return nil, &InvalidStateError{
					Type:   t,
					Chain:  key,
					Detail: "no root example entry exists for a reachable variant chain",
				}
			}

			if ce.reason != "" {
				data.Root = m.RootExampleUnavailable{Reason: ce.reason}
			} else {
				data.Root = m.RootExampleValue{Value: ce.value}
			}
		}

		items = append(items, &m.VariantPath{MutationPathRecord: entry.record, Enum: data})
	}

	slog.Debug("built mutation paths", "type", t, "paths", len(items))

	return items, nil
}

// Generate implements PathEngine.
func (e *pathEngine) Generate(ctx context.Context, t m.TypeName) (*m.Guide, error) {
	items, err := e.Paths(ctx, t)
	if err != nil {
		return nil, err
	}

	return formatGuide(t, items)
}

// formatGuide converts path items into the externally-consumed document. The
// emitted structure is a sequence: entries produced by different variant
// signatures may share a path string and must all survive.
func formatGuide(t m.TypeName, items []m.PathItem) (*m.Guide, error) {
	guide := &m.Guide{Type: t, MutationPaths: make([]m.MutationPathEntry, 0, len(items))}

	for _, item := range items {
		rec := item.Record()

		entry := m.MutationPathEntry{
			Path:        rec.Path,
			Description: rec.Description,
			PathInfo:    m.PathInfo{Mutability: rec.Mutability.Label()},
		}

		if reason, ok := m.MutabilityReason(rec.Mutability); ok {
			entry.PathInfo.MutabilityReason = reason
		}

		if _, mutable := rec.Mutability.(m.Mutable); mutable {
			raw, err := marshalExample(rec.Example)
			if err != nil {
				return nil, err
			}

			entry.Example = raw
		}

		if variant, ok := item.(*m.VariantPath); ok {
			entry.PathInfo.ApplicableVariants = variant.Enum.ApplicableVariants

			switch root := variant.Enum.Root.(type) {
			case m.RootExampleValue:
				raw, err := json.Marshal(root.Value)
				if err != nil {
					return nil, fmt.Errorf("marshal root example for %q: %w", rec.Path, err)
				}

				entry.PathInfo.RootExample = raw
			case m.RootExampleUnavailable:
				entry.PathInfo.RootExampleUnavailableReason = root.Reason
			}
		}

		guide.MutationPaths = append(guide.MutationPaths, entry)
	}

	return guide, nil
}

func marshalExample(example m.Example) (json.RawMessage, error) {
	switch ex := example.(type) {
	case m.ExampleValue:
		raw, err := json.Marshal(ex.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal example: %w", err)
		}

		return raw, nil
	case m.ExampleOptionAbsent:
		return json.RawMessage("null"), nil
	default:
		// A mutable entry always carries a value or an absent option; anything
		// else is a bug in the builders.
		return nil, fmt.Errorf("mutable entry carries no example")
	}
}

// selectionKey renders the internal chain-map key. Each selection contributes
// its location as well as its variant name: two sibling fields of one enum
// type make the same variant choice at different locations, and their root
// examples must not collapse onto one mapping entry.
func selectionKey(chain []m.VariantSelection) string {
	parts := make([]string, len(chain))
	for i, sel := range chain {
		parts[i] = sel.Location + "=" + string(sel.Variant)
	}

	return strings.Join(parts, ">")
}

func cloneSelections(chain []m.VariantSelection) []m.VariantSelection {
	out := make([]m.VariantSelection, len(chain))
	copy(out, chain)

	return out
}
