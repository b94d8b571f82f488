package model

import (
	"encoding/json"
	"time"
)

// Guide is the output document generated for one requested type: the flat,
// ordered catalogue of its mutation paths. The document body is exactly the
// mutation_paths sequence; the type name travels in the guide index, not in
// the document itself.
//
// MutationPaths is a sequence on purpose. Two variants with different
// signatures can legitimately produce entries sharing one path string, and a
// path-keyed map would silently drop all but the last of them.
type Guide struct {
	Type          TypeName            `json:"-"`
	MutationPaths []MutationPathEntry `json:"mutation_paths"`
}

// MutationPathEntry is one externally-consumed mutation path record.
type MutationPathEntry struct {
	Path        string          `json:"path"`
	Description string          `json:"description"`
	Example     json.RawMessage `json:"example,omitempty"`
	PathInfo    PathInfo        `json:"path_info"`
}

// PathInfo carries the mutability classification and variant annotations of
// one entry. RootExample and RootExampleUnavailableReason are mutually
// exclusive; exactly one of them is present when the path is nested inside at
// least one variant selection.
type PathInfo struct {
	Mutability                   string          `json:"mutability"`
	MutabilityReason             string          `json:"mutability_reason,omitempty"`
	ApplicableVariants           []VariantName   `json:"applicable_variants,omitempty"`
	RootExample                  json.RawMessage `json:"root_example,omitempty"`
	RootExampleUnavailableReason string          `json:"root_example_unavailable_reason,omitempty"`
}

// Summary tallies the entries of a guide per mutability class.
func (g *Guide) Summary(kind SchemaKind) TypeSummary {
	summary := TypeSummary{Type: g.Type, Kind: kind, Paths: len(g.MutationPaths)}

	for _, entry := range g.MutationPaths {
		switch entry.PathInfo.Mutability {
		case MutableLabel:
			summary.Mutable++
		case PartiallyMutableLabel:
			summary.PartiallyMutable++
		case NotMutableLabel:
			summary.NotMutable++
		}
	}

	return summary
}

// TypeSummary is the per-type result line shown by the list command and the
// generate progress UI.
type TypeSummary struct {
	Type             TypeName
	Kind             SchemaKind
	Paths            int
	Mutable          int
	PartiallyMutable int
	NotMutable       int
	Error            string
}

// GuideIndex is the on-disk catalogue of one guide directory: which snapshot
// the guides were generated from and where each type's document lives.
type GuideIndex struct {
	SnapshotDigest string              `json:"snapshot_digest"`
	GeneratedAt    time.Time           `json:"generated_at"`
	Files          map[TypeName]string `json:"files"`
}

// RunPlan describes one generate run before it starts.
type RunPlan struct {
	SnapshotDigest string
	Types          int
	Threads        int
	ShardIndex     int
	ShardCount     int
}

// RunStats is the final tally of one generate run.
type RunStats struct {
	Generated int
	Failed    int
	Paths     int
	Duration  time.Duration
}
