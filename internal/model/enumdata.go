package model

import "strings"

// VariantSelection is one step of a variant chain: the variant chosen at one
// enum level, the path of that level within the requested type, and the
// example value that, written at that level, selects it. Location matters: two
// sibling fields of the same enum type make the same variant choice at
// different locations, and those are distinct selections.
type VariantSelection struct {
	Variant  VariantName
	Location string
	Example  any
}

// VariantChain is the ordered list of variant names selected from the
// requested type's root down to a location.
type VariantChain []VariantName

// Key renders the chain as a single ">"-joined string.
func (c VariantChain) Key() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = string(v)
	}

	return strings.Join(parts, ">")
}

// Extend returns a new chain with one more selection appended. The receiver is
// not modified.
func (c VariantChain) Extend(v VariantName) VariantChain {
	out := make(VariantChain, 0, len(c)+1)
	out = append(out, c...)
	out = append(out, v)

	return out
}

// RootExample is a two-case union: either the complete root value that places
// an instance in the variant chain a path needs, or the reason no such value
// could be built. Exactly one case holds for every variant-nested path.
type RootExample interface {
	rootExample()
}

// RootExampleValue carries the fully-wrapped root value.
type RootExampleValue struct {
	Value any
}

func (RootExampleValue) rootExample() {}

// RootExampleUnavailable carries the reason the root value could not be built.
type RootExampleUnavailable struct {
	Reason string
}

func (RootExampleUnavailable) rootExample() {}

// EnumPathData annotates a mutation path that is reachable only through
// variant selections.
type EnumPathData struct {
	// Chain holds the selections from the requested type's root to the path,
	// using the deterministic representative variant of each level.
	Chain []VariantSelection
	// ApplicableVariants lists the variants of the path's immediate enclosing
	// variant level under which the path is valid.
	ApplicableVariants []VariantName
	// Root resolves to the full-chain root example, or the reason it is
	// unavailable.
	Root RootExample
}
