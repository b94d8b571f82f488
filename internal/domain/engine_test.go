package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

func leaf(kind m.ValueKind) *m.SchemaNode {
	return &m.SchemaNode{Kind: m.KindValue, ValueKind: kind}
}

func newTestEngine(types map[m.TypeName]*m.SchemaNode) PathEngine {
	return NewPathEngine(&m.Snapshot{Types: types}, nil, 0)
}

func generate(t *testing.T, engine PathEngine, name m.TypeName) *m.Guide {
	t.Helper()

	guide, err := engine.Generate(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, guide)

	assertGuideInvariants(t, guide)

	return guide
}

// assertGuideInvariants checks the structural rules every emitted document
// must satisfy: a not-mutable entry never carries an example, and a root
// example and its unavailability reason never appear together.
func assertGuideInvariants(t *testing.T, guide *m.Guide) {
	t.Helper()

	for _, entry := range guide.MutationPaths {
		if entry.PathInfo.Mutability == m.NotMutableLabel {
			assert.Nil(t, entry.Example, "not-mutable entry %q must not carry an example", entry.Path)
			assert.NotEmpty(t, entry.PathInfo.MutabilityReason, "not-mutable entry %q must carry a reason", entry.Path)
		}

		if entry.PathInfo.RootExample != nil {
			assert.Empty(t, entry.PathInfo.RootExampleUnavailableReason,
				"entry %q carries both a root example and an unavailability reason", entry.Path)
		}
	}
}

func entriesAt(guide *m.Guide, path string) []m.MutationPathEntry {
	var out []m.MutationPathEntry

	for _, entry := range guide.MutationPaths {
		if entry.Path == path {
			out = append(out, entry)
		}
	}

	return out
}

func singleEntryAt(t *testing.T, guide *m.Guide, path string) m.MutationPathEntry {
	t.Helper()

	entries := entriesAt(guide, path)
	require.Len(t, entries, 1, "expected exactly one entry at path %q", path)

	return entries[0]
}

func TestPathEngine_StructOfLeaves(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"geom::Vec2": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "x", Type: "f32"},
			{Name: "y", Type: "f32"},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "geom::Vec2")

	require.Len(t, guide.MutationPaths, 3)

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.JSONEq(t, `{"x": 1.0, "y": 1.0}`, string(root.Example))

	x := singleEntryAt(t, guide, ".x")
	assert.Equal(t, m.MutableLabel, x.PathInfo.Mutability)
	assert.JSONEq(t, `1.0`, string(x.Example))
	assert.Contains(t, x.Description, "field `x`")
	assert.Empty(t, x.PathInfo.ApplicableVariants)
	assert.Nil(t, x.PathInfo.RootExample)
}

func TestPathEngine_UnregisteredRootTypeIsSchemaError(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{"f32": leaf(m.ValueFloat)})

	_, err := engine.Generate(context.Background(), "geom::Missing")
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, m.TypeName("geom::Missing"), schemaErr.Type)
}

func TestPathEngine_UnregisteredFieldTypeBlocksLocation(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Holder": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "known", Type: "f32"},
			{Name: "ghost", Type: "app::Ghost"},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Holder")

	ghost := singleEntryAt(t, guide, ".ghost")
	assert.Equal(t, m.NotMutableLabel, ghost.PathInfo.Mutability)
	assert.Contains(t, ghost.PathInfo.MutabilityReason, "not registered")

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.PartiallyMutableLabel, root.PathInfo.Mutability)
	assert.Contains(t, root.PathInfo.MutabilityReason, "field `ghost`")
}

func TestPathEngine_LeafWithoutExampleIsNotMutable(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Handle": leaf(m.ValueKind("opaque")),
	})

	guide := generate(t, engine, "app::Handle")

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.NotMutableLabel, root.PathInfo.Mutability)
	assert.Contains(t, root.PathInfo.MutabilityReason, "no example available")
	assert.Nil(t, root.Example)
}

func TestPathEngine_SharedSignatureVariantsShareOnePath(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"geom::Shape": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Circle", Fields: []m.SchemaField{{Name: "radius", Type: "f32"}}},
			{Name: "Square", Fields: []m.SchemaField{{Name: "radius", Type: "f32"}}},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "geom::Shape")

	// One entry for the shared group location, one for the shared field.
	require.Len(t, guide.MutationPaths, 2)

	radius := singleEntryAt(t, guide, ".radius")
	assert.Equal(t, m.MutableLabel, radius.PathInfo.Mutability)
	assert.JSONEq(t, `1.0`, string(radius.Example))
	assert.Equal(t,
		[]m.VariantName{"geom::Shape::Circle", "geom::Shape::Square"},
		radius.PathInfo.ApplicableVariants)
	assert.JSONEq(t, `{"Circle": {"radius": 1.0}}`, string(radius.PathInfo.RootExample))

	group := singleEntryAt(t, guide, "")
	assert.Equal(t,
		[]m.VariantName{"geom::Shape::Circle", "geom::Shape::Square"},
		group.PathInfo.ApplicableVariants)
	assert.JSONEq(t, `{"Circle": {"radius": 1.0}}`, string(group.Example))
	assert.Nil(t, group.PathInfo.RootExample, "a root-level group needs no root example")
}

func TestPathEngine_ManyVariantsOneSignatureOneGroup(t *testing.T) {
	variants := make([]m.SchemaVariant, 0, 10)
	for i := 0; i < 10; i++ {
		variants = append(variants, m.SchemaVariant{
			Name:   fmt.Sprintf("V%d", i),
			Fields: []m.SchemaField{{Name: "payload", Type: "u32"}},
		})
	}

	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Event": {Kind: m.KindEnum, Variants: variants},
		"u32":        leaf(m.ValueUint),
	})

	guide := generate(t, engine, "app::Event")

	payload := singleEntryAt(t, guide, ".payload")
	assert.Len(t, payload.PathInfo.ApplicableVariants, 10)
	assert.JSONEq(t, `{"V0": {"payload": 42}}`, string(payload.PathInfo.RootExample))
}

func TestPathEngine_VariantFormsWrapCorrectly(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Mixed": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Unit"},
			{Name: "Single", Elements: []m.TypeName{"f32"}},
			{Name: "Pair", Elements: []m.TypeName{"f32", "f32"}},
			{Name: "Named", Fields: []m.SchemaField{{Name: "alpha", Type: "f32"}}},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Mixed")

	groups := entriesAt(guide, "")
	require.Len(t, groups, 4)

	assert.JSONEq(t, `"Unit"`, string(groups[0].Example))
	assert.JSONEq(t, `{"Single": 1.0}`, string(groups[1].Example))
	assert.JSONEq(t, `{"Pair": [1.0, 1.0]}`, string(groups[2].Example))
	assert.JSONEq(t, `{"Named": {"alpha": 1.0}}`, string(groups[3].Example))

	// Single and Pair have different signatures, so `.0` legitimately appears
	// once per group.
	zeros := entriesAt(guide, ".0")
	require.Len(t, zeros, 2)
	assert.JSONEq(t, `{"Single": 1.0}`, string(zeros[0].PathInfo.RootExample))
	assert.JSONEq(t, `{"Pair": [1.0, 1.0]}`, string(zeros[1].PathInfo.RootExample))
}

func TestPathEngine_EnumInsideStructRootExample(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Outer": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "inner", Type: "app::Inner"},
		}},
		"app::Inner": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "VariantA"},
			{Name: "VariantB", Fields: []m.SchemaField{{Name: "name", Type: "str"}}},
		}},
		"str": leaf(m.ValueString),
	})

	guide := generate(t, engine, "app::Outer")

	name := singleEntryAt(t, guide, ".inner.name")
	assert.Equal(t, []m.VariantName{"app::Inner::VariantB"}, name.PathInfo.ApplicableVariants)
	assert.JSONEq(t, `{"inner": {"VariantB": {"name": "hello"}}}`, string(name.PathInfo.RootExample))

	// The struct's own example uses the enum's representative variant.
	root := singleEntryAt(t, guide, "")
	assert.JSONEq(t, `{"inner": "VariantA"}`, string(root.Example))
}

func TestPathEngine_SameEnumSiblingFieldsKeepDistinctRootExamples(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Holder": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "first", Type: "app::Inner"},
			{Name: "second", Type: "app::Inner"},
		}},
		"app::Inner": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "A"},
			{Name: "B", Fields: []m.SchemaField{{Name: "name", Type: "str"}}},
		}},
		"str": leaf(m.ValueString),
	})

	guide := generate(t, engine, "app::Holder")

	// Both fields make the same variant choice, but at different locations:
	// each root example must select variant B at its own field and leave the
	// sibling at the representative.
	first := singleEntryAt(t, guide, ".first.name")
	assert.JSONEq(t, `{"first": {"B": {"name": "hello"}}, "second": "A"}`, string(first.PathInfo.RootExample))

	second := singleEntryAt(t, guide, ".second.name")
	assert.JSONEq(t, `{"first": "A", "second": {"B": {"name": "hello"}}}`, string(second.PathInfo.RootExample))
}

func TestPathEngine_RepeatedTupleElementsKeepDistinctRootExamples(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Duo": {Kind: m.KindTuple, Elements: []m.TypeName{"app::Inner", "app::Inner"}},
		"app::Inner": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "A"},
			{Name: "B", Fields: []m.SchemaField{{Name: "name", Type: "str"}}},
		}},
		"str": leaf(m.ValueString),
	})

	guide := generate(t, engine, "app::Duo")

	first := singleEntryAt(t, guide, ".0.name")
	assert.JSONEq(t, `[{"B": {"name": "hello"}}, "A"]`, string(first.PathInfo.RootExample))

	second := singleEntryAt(t, guide, ".1.name")
	assert.JSONEq(t, `["A", {"B": {"name": "hello"}}]`, string(second.PathInfo.RootExample))
}

func TestPathEngine_NestedEnumChains(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Outer": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Wrap", Fields: []m.SchemaField{{Name: "inner", Type: "app::Inner"}}},
		}},
		"app::Inner": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Leaf", Fields: []m.SchemaField{{Name: "name", Type: "str"}}},
		}},
		"str": leaf(m.ValueString),
	})

	guide := generate(t, engine, "app::Outer")

	name := singleEntryAt(t, guide, ".inner.name")
	assert.Equal(t, []m.VariantName{"app::Inner::Leaf"}, name.PathInfo.ApplicableVariants)
	assert.JSONEq(t, `{"Wrap": {"inner": {"Leaf": {"name": "hello"}}}}`, string(name.PathInfo.RootExample))

	inner := singleEntryAt(t, guide, ".inner")
	assert.JSONEq(t, `{"Wrap": {"inner": {"Leaf": {"name": "hello"}}}}`, string(inner.PathInfo.RootExample))
}

func TestPathEngine_UnconstructibleVariant(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Gate": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Open"},
			{Name: "Locked", Fields: []m.SchemaField{{Name: "code", Type: "app::Opaque"}}},
		}},
		"app::Opaque": leaf(m.ValueKind("opaque")),
	})

	guide := generate(t, engine, "app::Gate")

	code := singleEntryAt(t, guide, ".code")
	assert.Equal(t, m.NotMutableLabel, code.PathInfo.Mutability)
	assert.Contains(t, code.PathInfo.RootExampleUnavailableReason, "cannot be constructed")
	assert.Nil(t, code.PathInfo.RootExample)
}

func TestPathEngine_PartiallyConstructibleVariant(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::State": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Running", Fields: []m.SchemaField{
				{Name: "progress", Type: "f32"},
				{Name: "handle", Type: "app::Opaque"},
			}},
		}},
		"f32":         leaf(m.ValueFloat),
		"app::Opaque": leaf(m.ValueKind("opaque")),
	})

	guide := generate(t, engine, "app::State")

	// The writable field is reachable, but only on an instance already in the
	// Running variant: no complete root example can be assembled.
	progress := singleEntryAt(t, guide, ".progress")
	assert.Equal(t, m.MutableLabel, progress.PathInfo.Mutability)
	assert.JSONEq(t, `1.0`, string(progress.Example))
	assert.Nil(t, progress.PathInfo.RootExample)
	assert.Contains(t, progress.PathInfo.RootExampleUnavailableReason, "handle")

	group := singleEntryAt(t, guide, "")
	assert.Equal(t, m.PartiallyMutableLabel, group.PathInfo.Mutability)
}

func TestPathEngine_ArrayEmitsEveryIndex(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Triple": {Kind: m.KindArray, Element: "f32", Size: 3},
		"f32":         leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Triple")

	require.Len(t, guide.MutationPaths, 4)

	root := singleEntryAt(t, guide, "")
	assert.JSONEq(t, `[1.0, 1.0, 1.0]`, string(root.Example))

	for _, path := range []string{".0", ".1", ".2"} {
		entry := singleEntryAt(t, guide, path)
		assert.Equal(t, m.MutableLabel, entry.PathInfo.Mutability)
		assert.JSONEq(t, `1.0`, string(entry.Example))
	}
}

func TestPathEngine_ArrayOfEnumFillsAllIndices(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Pair": {Kind: m.KindArray, Element: "geom::Shape", Size: 2},
		"geom::Shape": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Circle", Fields: []m.SchemaField{{Name: "radius", Type: "f32"}}},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Pair")

	// Every index has the same structure, so the root example fills all of
	// them and stays valid for whichever index a consumer targets.
	for _, path := range []string{".0.radius", ".1.radius"} {
		entry := singleEntryAt(t, guide, path)
		assert.JSONEq(t,
			`[{"Circle": {"radius": 1.0}}, {"Circle": {"radius": 1.0}}]`,
			string(entry.PathInfo.RootExample))
	}
}

func TestPathEngine_ListEmitsRepresentativeElement(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Scores": {Kind: m.KindList, Element: "f32"},
		"f32":         leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Scores")

	require.Len(t, guide.MutationPaths, 2)

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.JSONEq(t, `[1.0]`, string(root.Example))

	element := singleEntryAt(t, guide, ".0")
	assert.JSONEq(t, `1.0`, string(element.Example))
}

func TestPathEngine_ListOfBlockedElementStaysMutable(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Handles": {Kind: m.KindList, Element: "app::Opaque"},
		"app::Opaque":  leaf(m.ValueKind("opaque")),
	})

	guide := generate(t, engine, "app::Handles")

	// The empty list is always a complete, writable value.
	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.JSONEq(t, `[]`, string(root.Example))

	element := singleEntryAt(t, guide, ".0")
	assert.Equal(t, m.NotMutableLabel, element.PathInfo.Mutability)
}

func TestPathEngine_MapEmitsOwnEntryOnly(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Lookup": {Kind: m.KindMap, Key: "str", Value: "f32"},
		"str":         leaf(m.ValueString),
		"f32":         leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Lookup")

	require.Len(t, guide.MutationPaths, 1)

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.JSONEq(t, `{"hello": 1.0}`, string(root.Example))
}

func TestPathEngine_SetEmitsOwnEntryOnly(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Tags": {Kind: m.KindSet, Element: "str"},
		"str":       leaf(m.ValueString),
	})

	guide := generate(t, engine, "app::Tags")

	require.Len(t, guide.MutationPaths, 1)

	root := singleEntryAt(t, guide, "")
	assert.JSONEq(t, `["hello"]`, string(root.Example))
}

func TestPathEngine_OptionIsTransparent(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Config": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "limit", Type: "app::MaybePoint"},
		}},
		"app::MaybePoint": {Kind: m.KindOption, Element: "geom::Point"},
		"geom::Point": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "x", Type: "f32"},
		}},
		"f32": leaf(m.ValueFloat),
	})

	guide := generate(t, engine, "app::Config")

	limit := singleEntryAt(t, guide, ".limit")
	assert.Equal(t, m.MutableLabel, limit.PathInfo.Mutability)
	assert.JSONEq(t, `{"x": 1.0}`, string(limit.Example))

	// Descendants keep their paths (no extra segment for the option) and are
	// annotated with the presence requirement.
	x := singleEntryAt(t, guide, ".limit.x")
	assert.Equal(t, m.MutableLabel, x.PathInfo.Mutability)
	assert.Contains(t, x.Description, "requires the option value to be present")
}

func TestPathEngine_OptionOfBlockedElementIsNull(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Maybe":  {Kind: m.KindOption, Element: "app::Opaque"},
		"app::Opaque": leaf(m.ValueKind("opaque")),
	})

	guide := generate(t, engine, "app::Maybe")

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.Equal(t, "null", string(root.Example))
}

func TestPathEngine_SelfReferentialTypeTerminates(t *testing.T) {
	snapshot := &m.Snapshot{Types: map[m.TypeName]*m.SchemaNode{
		"tree::Node": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "value", Type: "f32"},
			{Name: "next", Type: "tree::Node"},
		}},
		"f32": leaf(m.ValueFloat),
	}}

	engine := NewPathEngine(snapshot, nil, 2)

	guide := generate(t, engine, "tree::Node")

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.PartiallyMutableLabel, root.PathInfo.Mutability)

	deepest := singleEntryAt(t, guide, ".next.next.next")
	assert.Equal(t, m.NotMutableLabel, deepest.PathInfo.Mutability)
	assert.Contains(t, deepest.PathInfo.MutabilityReason, "recursion limit")

	// Recursion stops at the cap: nothing below the truncated location.
	assert.Empty(t, entriesAt(guide, ".next.next.next.next"))
	assert.Empty(t, entriesAt(guide, ".next.next.next.value"))

	truncated := singleEntryAt(t, guide, ".next.next")
	assert.Equal(t, m.NotMutableLabel, truncated.PathInfo.Mutability)
}

func TestPathEngine_EnumWithoutVariantsIsBlocked(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Never": {Kind: m.KindEnum},
	})

	guide := generate(t, engine, "app::Never")

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.NotMutableLabel, root.PathInfo.Mutability)
	assert.Contains(t, root.PathInfo.MutabilityReason, "no variants")
}

func TestPathEngine_VariantWithBothFormsIsSchemaError(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Broken": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{
				Name:     "Both",
				Elements: []m.TypeName{"f32"},
				Fields:   []m.SchemaField{{Name: "x", Type: "f32"}},
			},
		}},
		"f32": leaf(m.ValueFloat),
	})

	_, err := engine.Generate(context.Background(), "app::Broken")
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Detail, "both elements and fields")
}

func TestPathEngine_UnknownKindIsSchemaError(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Weird": {Kind: m.SchemaKind("graph")},
	})

	_, err := engine.Generate(context.Background(), "app::Weird")
	require.Error(t, err)

	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
}

func TestPathEngine_CancelledContext(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{"f32": leaf(m.ValueFloat)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Paths(ctx, "f32")
	require.ErrorIs(t, err, context.Canceled)
}

func TestPathEngine_TupleComposesElements(t *testing.T) {
	engine := newTestEngine(map[m.TypeName]*m.SchemaNode{
		"app::Pair":   {Kind: m.KindTuple, Elements: []m.TypeName{"f32", "str"}},
		"app::Single": {Kind: m.KindTuple, Elements: []m.TypeName{"f32"}},
		"f32":         leaf(m.ValueFloat),
		"str":         leaf(m.ValueString),
	})

	pair := generate(t, engine, "app::Pair")
	root := singleEntryAt(t, pair, "")
	assert.JSONEq(t, `[1.0, "hello"]`, string(root.Example))
	assert.JSONEq(t, `"hello"`, string(singleEntryAt(t, pair, ".1").Example))

	// A one-element tuple serializes as its bare element.
	single := generate(t, engine, "app::Single")
	assert.JSONEq(t, `1.0`, string(singleEntryAt(t, single, "").Example))
}
