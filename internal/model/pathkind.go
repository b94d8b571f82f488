package model

import "strconv"

// PathKind describes one navigation step inside an instance of a type. A full
// mutation path string is the concatenation of the segments of the steps taken
// from the type root.
type PathKind interface {
	// Segment renders the navigation step, e.g. ".alpha" or ".0". The root
	// step renders empty.
	Segment() string
	// Target is the type addressed by the step.
	Target() TypeName

	pathKind()
}

// RecordField navigates into a named field of a record.
type RecordField struct {
	Name FieldName
	Type TypeName
}

func (k RecordField) Segment() string { return "." + string(k.Name) }

func (k RecordField) Target() TypeName { return k.Type }

func (RecordField) pathKind() {}

// IndexedElement navigates into a positional element of a tuple, array or list.
type IndexedElement struct {
	Index int
	Type  TypeName
}

func (k IndexedElement) Segment() string { return "." + strconv.Itoa(k.Index) }

func (k IndexedElement) Target() TypeName { return k.Type }

func (IndexedElement) pathKind() {}

// MapRole identifies which side of a map entry (or a set element) a step
// addresses.
type MapRole string

// Map entry roles.
const (
	MapRoleKey     MapRole = "key"
	MapRoleValue   MapRole = "value"
	MapRoleElement MapRole = "element"
)

// MapEntry navigates into one role of a map entry or set element. Entries are
// not statically addressable, so this step never appears in emitted paths; it
// scopes knowledge lookups and diagnostics while entry examples are assembled.
type MapEntry struct {
	Role MapRole
	Type TypeName
}

func (k MapEntry) Segment() string { return "[" + string(k.Role) + "]" }

func (k MapEntry) Target() TypeName { return k.Type }

func (MapEntry) pathKind() {}

// RootValue is the zero-length step addressing the whole instance.
type RootValue struct {
	Type TypeName
}

func (RootValue) Segment() string { return "" }

func (k RootValue) Target() TypeName { return k.Type }

func (RootValue) pathKind() {}
