// Package model defines the data structures for mutation-path generation.
package model

import "strings"

// Path represents a file system path.
type Path string

// TypeName is the fully-qualified identifier of a schema type,
// e.g. "geom::Shape". It is the key into the registry snapshot.
type TypeName string

// FieldName is the name of one record field.
type FieldName string

// VariantName is a fully-qualified variant identifier of the form
// "EnumType::Variant". It is ordered and usable as a map key.
type VariantName string

const variantSeparator = "::"

// QualifiedVariant builds the fully-qualified name for a variant of an enum type.
func QualifiedVariant(enum TypeName, variant string) VariantName {
	return VariantName(string(enum) + variantSeparator + variant)
}

// Short returns the bare variant name without the enum qualifier.
func (v VariantName) Short() string {
	s := string(v)

	idx := strings.LastIndex(s, variantSeparator)
	if idx < 0 {
		return s
	}

	return s[idx+len(variantSeparator):]
}

// Enum returns the enum type the variant belongs to.
func (v VariantName) Enum() TypeName {
	s := string(v)

	idx := strings.LastIndex(s, variantSeparator)
	if idx < 0 {
		return ""
	}

	return TypeName(s[:idx])
}
