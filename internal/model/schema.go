package model

import "sort"

// SchemaKind is the structural kind a schema node declares.
type SchemaKind string

const (
	// KindStruct is a record with named fields.
	KindStruct SchemaKind = "struct"
	// KindTuple is an ordered, fixed list of differently-typed elements.
	KindTuple SchemaKind = "tuple"
	// KindEnum is a tagged union of variants.
	KindEnum SchemaKind = "enum"
	// KindArray is a fixed-size homogeneous sequence.
	KindArray SchemaKind = "array"
	// KindList is a growable homogeneous sequence.
	KindList SchemaKind = "list"
	// KindMap is a key-value collection.
	KindMap SchemaKind = "map"
	// KindSet is an unordered collection of unique elements.
	KindSet SchemaKind = "set"
	// KindOption is an optional wrapper around one element type.
	KindOption SchemaKind = "option"
	// KindValue is a primitive leaf.
	KindValue SchemaKind = "value"
)

// ValueKind classifies a primitive leaf node.
type ValueKind string

// Primitive leaf kinds.
const (
	ValueBool   ValueKind = "bool"
	ValueInt    ValueKind = "int"
	ValueUint   ValueKind = "uint"
	ValueFloat  ValueKind = "float"
	ValueString ValueKind = "string"
	ValueChar   ValueKind = "char"
)

// SchemaField is one named field of a struct node or record-like variant.
type SchemaField struct {
	Name FieldName `json:"name"`
	Type TypeName  `json:"type"`
}

// SchemaVariant is one declared variant of an enum node. Exactly one form
// applies: neither Elements nor Fields (unit), Elements (tuple-like), or
// Fields (record-like). Declaring both is malformed.
type SchemaVariant struct {
	Name     string        `json:"name"`
	Elements []TypeName    `json:"elements,omitempty"`
	Fields   []SchemaField `json:"fields,omitempty"`
}

// SchemaNode describes the structure of one registered type.
type SchemaNode struct {
	Kind      SchemaKind      `json:"kind"`
	Fields    []SchemaField   `json:"fields,omitempty"`
	Elements  []TypeName      `json:"elements,omitempty"`
	Variants  []SchemaVariant `json:"variants,omitempty"`
	Element   TypeName        `json:"element,omitempty"`
	Size      int             `json:"size,omitempty"`
	Key       TypeName        `json:"key,omitempty"`
	Value     TypeName        `json:"value,omitempty"`
	ValueKind ValueKind       `json:"value_kind,omitempty"`
}

// Snapshot is an in-memory, read-only view of the schema registry: the full
// mapping from type name to schema node fetched from the remote process.
type Snapshot struct {
	Types map[TypeName]*SchemaNode `json:"types"`
}

// Lookup returns the schema node registered under the given type name.
func (s *Snapshot) Lookup(name TypeName) (*SchemaNode, bool) {
	if s == nil {
		return nil, false
	}

	node, ok := s.Types[name]

	return node, ok
}

// TypeNames returns all registered type names in sorted order.
func (s *Snapshot) TypeNames() []TypeName {
	if s == nil {
		return nil
	}

	names := make([]TypeName, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}
