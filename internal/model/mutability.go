package model

// Mutability classifies whether a location can be written through a mutation
// call. It is a three-way union; the partially-mutable state exists because a
// location nested in a variant type may only be writable once an external
// process has already placed the instance in the right variant.
type Mutability interface {
	// Label renders the classification for the output document.
	Label() string

	mutability()
}

// Mutability labels used in output documents.
const (
	MutableLabel          = "mutable"
	PartiallyMutableLabel = "partially_mutable"
	NotMutableLabel       = "not_mutable"
)

// Mutable marks a fully writable location.
type Mutable struct{}

func (Mutable) Label() string { return MutableLabel }

func (Mutable) mutability() {}

// PartiallyMutable marks a location that is writable only in part, or only
// under a precondition described by Reason.
type PartiallyMutable struct {
	Reason string
}

func (m PartiallyMutable) Label() string { return PartiallyMutableLabel }

func (PartiallyMutable) mutability() {}

// NotMutable marks a location that cannot be written; Reason explains why.
type NotMutable struct {
	Reason string
}

func (m NotMutable) Label() string { return NotMutableLabel }

func (NotMutable) mutability() {}

// MutabilityReason returns the reason attached to a partially-mutable or
// not-mutable classification, if any.
func MutabilityReason(m Mutability) (string, bool) {
	switch v := m.(type) {
	case PartiallyMutable:
		return v.Reason, v.Reason != ""
	case NotMutable:
		return v.Reason, v.Reason != ""
	default:
		return "", false
	}
}
