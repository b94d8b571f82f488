package model

// KnowledgeFile is the static knowledge base as loaded from disk: example
// overrides at three granularities. Lookup precedence (most to least
// specific) is signature element, record field, exact type; the lookup logic
// lives in the domain layer.
type KnowledgeFile struct {
	Version           int                                     `yaml:"version"`
	ExactTypes        map[TypeName]any                        `yaml:"exact_types"`
	RecordFields      map[TypeName]map[FieldName]any          `yaml:"record_fields"`
	SignatureElements map[TypeName][]SignatureElementOverride `yaml:"signature_elements"`
}

// SignatureElementOverride pins the example of one element of one variant
// signature of an enum type. Signature is the canonical signature key, e.g.
// "tuple(f32,f32)"; Index is the element (or field) position within it.
type SignatureElementOverride struct {
	Signature string `yaml:"signature"`
	Index     int    `yaml:"index"`
	Value     any    `yaml:"value"`
}
