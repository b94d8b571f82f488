package domain

import (
	m "mutapath.dev/pkg/mutapath/internal/model"
)

// KnowledgeBase is a read-only lookup of static example overrides. It is
// injected through the recursion context rather than read from a package
// variable so tests can swap it out. A lookup miss is the expected common
// case, not an error.
type KnowledgeBase interface {
	// ExactType returns the override registered for a whole type.
	ExactType(t m.TypeName) (any, bool)
	// RecordField returns the override registered for one named field of a
	// record type.
	RecordField(parent m.TypeName, field m.FieldName) (any, bool)
	// SignatureElement returns the override registered for one element of one
	// variant signature of an enum type. The signature is identified by its
	// canonical key.
	SignatureElement(enum m.TypeName, signatureKey string, index int) (any, bool)
}

type knowledgeBase struct {
	file *m.KnowledgeFile
}

// NewKnowledgeBase wraps a loaded knowledge file. A nil file yields an empty
// base where every lookup misses.
func NewKnowledgeBase(file *m.KnowledgeFile) KnowledgeBase {
	return &knowledgeBase{file: file}
}

// ExactType implements KnowledgeBase.
func (k *knowledgeBase) ExactType(t m.TypeName) (any, bool) {
	if k.file == nil {
		return nil, false
	}

	value, ok := k.file.ExactTypes[t]

	return value, ok
}

// RecordField implements KnowledgeBase.
func (k *knowledgeBase) RecordField(parent m.TypeName, field m.FieldName) (any, bool) {
	if k.file == nil {
		return nil, false
	}

	fields, ok := k.file.RecordFields[parent]
	if !ok {
		return nil, false
	}

	value, ok := fields[field]

	return value, ok
}

// SignatureElement implements KnowledgeBase.
func (k *knowledgeBase) SignatureElement(enum m.TypeName, signatureKey string, index int) (any, bool) {
	if k.file == nil {
		return nil, false
	}

	for _, override := range k.file.SignatureElements[enum] {
		if override.Signature == signatureKey && override.Index == index {
			return override.Value, true
		}
	}

	return nil, false
}
