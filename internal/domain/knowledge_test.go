package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

func TestKnowledgeBase_NilFileMissesEverything(t *testing.T) {
	kb := NewKnowledgeBase(nil)

	_, ok := kb.ExactType("f32")
	assert.False(t, ok)

	_, ok = kb.RecordField("geom::Vec2", "x")
	assert.False(t, ok)

	_, ok = kb.SignatureElement("geom::Shape", "tuple(f32)", 0)
	assert.False(t, ok)
}

func TestKnowledgeBase_Lookups(t *testing.T) {
	kb := NewKnowledgeBase(&m.KnowledgeFile{
		ExactTypes: map[m.TypeName]any{"f32": 2.5},
		RecordFields: map[m.TypeName]map[m.FieldName]any{
			"geom::Vec2": {"x": 7.0},
		},
		SignatureElements: map[m.TypeName][]m.SignatureElementOverride{
			"geom::Shape": {
				{Signature: "tuple(f32,f32)", Index: 1, Value: 9.0},
			},
		},
	})

	value, ok := kb.ExactType("f32")
	require.True(t, ok)
	assert.Equal(t, 2.5, value)

	value, ok = kb.RecordField("geom::Vec2", "x")
	require.True(t, ok)
	assert.Equal(t, 7.0, value)

	_, ok = kb.RecordField("geom::Vec2", "y")
	assert.False(t, ok)

	value, ok = kb.SignatureElement("geom::Shape", "tuple(f32,f32)", 1)
	require.True(t, ok)
	assert.Equal(t, 9.0, value)

	_, ok = kb.SignatureElement("geom::Shape", "tuple(f32,f32)", 0)
	assert.False(t, ok)

	_, ok = kb.SignatureElement("geom::Shape", "tuple(f32)", 1)
	assert.False(t, ok)
}

func knowledgeEngine(types map[m.TypeName]*m.SchemaNode, file *m.KnowledgeFile) PathEngine {
	return NewPathEngine(&m.Snapshot{Types: types}, NewKnowledgeBase(file), 0)
}

func TestPathEngine_ExactTypeOverride(t *testing.T) {
	engine := knowledgeEngine(map[m.TypeName]*m.SchemaNode{
		"geom::Vec2": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "x", Type: "f32"},
			{Name: "y", Type: "f32"},
		}},
		"f32": leaf(m.ValueFloat),
	}, &m.KnowledgeFile{
		ExactTypes: map[m.TypeName]any{"f32": 2.5},
	})

	guide := generate(t, engine, "geom::Vec2")

	assert.JSONEq(t, `2.5`, string(singleEntryAt(t, guide, ".x").Example))
	assert.JSONEq(t, `2.5`, string(singleEntryAt(t, guide, ".y").Example))
	assert.JSONEq(t, `{"x": 2.5, "y": 2.5}`, string(singleEntryAt(t, guide, "").Example))
}

func TestPathEngine_RecordFieldOverrideBeatsExactType(t *testing.T) {
	engine := knowledgeEngine(map[m.TypeName]*m.SchemaNode{
		"geom::Vec2": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "x", Type: "f32"},
			{Name: "y", Type: "f32"},
		}},
		"f32": leaf(m.ValueFloat),
	}, &m.KnowledgeFile{
		ExactTypes: map[m.TypeName]any{"f32": 2.5},
		RecordFields: map[m.TypeName]map[m.FieldName]any{
			"geom::Vec2": {"x": 7.0},
		},
	})

	guide := generate(t, engine, "geom::Vec2")

	assert.JSONEq(t, `7.0`, string(singleEntryAt(t, guide, ".x").Example))
	assert.JSONEq(t, `2.5`, string(singleEntryAt(t, guide, ".y").Example))
}

func TestPathEngine_SignatureElementOverrideBeatsRecordField(t *testing.T) {
	engine := knowledgeEngine(map[m.TypeName]*m.SchemaNode{
		"geom::Shape": {Kind: m.KindEnum, Variants: []m.SchemaVariant{
			{Name: "Circle", Fields: []m.SchemaField{{Name: "radius", Type: "f32"}}},
		}},
		"f32": leaf(m.ValueFloat),
	}, &m.KnowledgeFile{
		ExactTypes: map[m.TypeName]any{"f32": 2.5},
		// A record-field override scoped to another type must not leak into
		// the variant's payload field.
		RecordFields: map[m.TypeName]map[m.FieldName]any{
			"geom::Shape": {"radius": 5.0},
		},
		SignatureElements: map[m.TypeName][]m.SignatureElementOverride{
			"geom::Shape": {
				{Signature: "record(radius:f32)", Index: 0, Value: 9.0},
			},
		},
	})

	guide := generate(t, engine, "geom::Shape")

	radius := singleEntryAt(t, guide, ".radius")
	assert.JSONEq(t, `9.0`, string(radius.Example))
	assert.JSONEq(t, `{"Circle": {"radius": 9.0}}`, string(radius.PathInfo.RootExample))
}

func TestPathEngine_OverrideUnblocksLocation(t *testing.T) {
	engine := knowledgeEngine(map[m.TypeName]*m.SchemaNode{
		"app::Holder": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "handle", Type: "app::Opaque"},
		}},
		"app::Opaque": leaf(m.ValueKind("opaque")),
	}, &m.KnowledgeFile{
		ExactTypes: map[m.TypeName]any{"app::Opaque": "handle-0"},
	})

	guide := generate(t, engine, "app::Holder")

	handle := singleEntryAt(t, guide, ".handle")
	assert.Equal(t, m.MutableLabel, handle.PathInfo.Mutability)
	assert.JSONEq(t, `"handle-0"`, string(handle.Example))

	root := singleEntryAt(t, guide, "")
	assert.Equal(t, m.MutableLabel, root.PathInfo.Mutability)
	assert.JSONEq(t, `{"handle": "handle-0"}`, string(root.Example))
}

func TestPathEngine_OverrideDoesNotLeakAcrossParents(t *testing.T) {
	engine := knowledgeEngine(map[m.TypeName]*m.SchemaNode{
		"app::A": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "value", Type: "f32"},
		}},
		"app::B": {Kind: m.KindStruct, Fields: []m.SchemaField{
			{Name: "value", Type: "f32"},
		}},
		"f32": leaf(m.ValueFloat),
	}, &m.KnowledgeFile{
		RecordFields: map[m.TypeName]map[m.FieldName]any{
			"app::A": {"value": 7.0},
		},
	})

	a := generate(t, engine, "app::A")
	assert.JSONEq(t, `7.0`, string(singleEntryAt(t, a, ".value").Example))

	b := generate(t, engine, "app::B")
	assert.JSONEq(t, `1.0`, string(singleEntryAt(t, b, ".value").Example))
}
