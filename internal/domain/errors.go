// Package domain contains the core mutation-path generation engine.
package domain

import (
	"fmt"

	m "mutapath.dev/pkg/mutapath/internal/model"
)

// SchemaError reports a malformed or unrecognized schema node. It aborts
// processing of the offending type only; other types of the same run are
// unaffected.
type SchemaError struct {
	Type   m.TypeName
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error in type %q: %s", e.Type, e.Detail)
}

// InvalidStateError reports a violated algorithm invariant, e.g. a required
// bottom-up chain-to-example mapping entry is missing. It is always fatal for
// the whole pass and is never patched with a fallback value; a silent
// fallback is exactly the class of bug this error exists to catch.
type InvalidStateError struct {
	Type   m.TypeName
	Chain  string
	Detail string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state in type %q (chain %q): %s", e.Type, e.Chain, e.Detail)
}

func schemaErrorf(t m.TypeName, format string, args ...any) error {
	return &SchemaError{Type: t, Detail: fmt.Sprintf(format, args...)}
}
