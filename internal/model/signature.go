package model

import "strings"

// SignatureKind is the structural form of one variant.
type SignatureKind int

// Variant signature forms.
const (
	SignatureUnit SignatureKind = iota
	SignatureTuple
	SignatureRecord
)

// SignatureField is one named element of a record-like signature.
type SignatureField struct {
	Name FieldName
	Type TypeName
}

// VariantSignature is the structural shape of a variant, independent of the
// variant's name. Two variants with equal signatures are interchangeable for
// path generation. Use the constructors; Key gives the canonical compound key
// used for grouping, so that same-named fields of different types never
// collide under one path key.
type VariantSignature struct {
	Kind     SignatureKind
	Elements []TypeName
	Fields   []SignatureField
}

// UnitSignature describes a bare variant with no payload.
func UnitSignature() VariantSignature {
	return VariantSignature{Kind: SignatureUnit}
}

// TupleSignature describes a variant with ordered, unnamed elements.
func TupleSignature(elements []TypeName) VariantSignature {
	return VariantSignature{Kind: SignatureTuple, Elements: elements}
}

// RecordSignature describes a variant with named fields.
func RecordSignature(fields []SignatureField) VariantSignature {
	return VariantSignature{Kind: SignatureRecord, Fields: fields}
}

// Key renders the canonical grouping key, e.g. "unit", "tuple(f32,f32)" or
// "record(alpha:f32,beta:u8)".
func (s VariantSignature) Key() string {
	switch s.Kind {
	case SignatureTuple:
		parts := make([]string, len(s.Elements))
		for i, t := range s.Elements {
			parts[i] = string(t)
		}

		return "tuple(" + strings.Join(parts, ",") + ")"
	case SignatureRecord:
		parts := make([]string, len(s.Fields))
		for i, f := range s.Fields {
			parts[i] = string(f.Name) + ":" + string(f.Type)
		}

		return "record(" + strings.Join(parts, ",") + ")"
	default:
		return "unit"
	}
}
