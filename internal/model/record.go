package model

// MutationPathRecord is one addressable location produced by a path-building
// pass: the rendered path, the type it targets, the navigation step that
// created it, and the assembled example and mutability classification.
type MutationPathRecord struct {
	Path        string
	Type        TypeName
	Kind        PathKind
	Description string
	Example     Example
	Mutability  Mutability
}

// PathItem is a discriminated mutation-path item. A path is either plain or
// variant-nested; the distinction is carried by the concrete type, never
// inferred from the presence of optional fields.
type PathItem interface {
	// Record gives access to the common path record.
	Record() *MutationPathRecord

	pathItem()
}

// PlainPath is a location reachable without any variant selection.
type PlainPath struct {
	MutationPathRecord
}

func (p *PlainPath) Record() *MutationPathRecord { return &p.MutationPathRecord }

func (*PlainPath) pathItem() {}

// VariantPath is a location reachable only through at least one variant
// selection.
type VariantPath struct {
	MutationPathRecord

	Enum EnumPathData
}

func (p *VariantPath) Record() *MutationPathRecord { return &p.MutationPathRecord }

func (*VariantPath) pathItem() {}
