package domain

import (
	"fmt"
	"strings"

	m "mutapath.dev/pkg/mutapath/internal/model"
	"mutapath.dev/pkg/mutapath/pkg"
)

// defaultLeafExamples is the built-in default-by-primitive-kind table,
// consulted after the knowledge base. A value kind outside this table has no
// example and blocks its location.
var defaultLeafExamples = map[m.ValueKind]any{
	m.ValueBool:   true,
	m.ValueInt:    42,
	m.ValueUint:   42,
	m.ValueFloat:  1.0,
	m.ValueString: "hello",
	m.ValueChar:   "a",
}

func (e *pathEngine) buildValue(ctx buildContext, t m.TypeName, node *m.SchemaNode) buildResult {
	value, ok := defaultLeafExamples[node.ValueKind]
	if !ok {
		return e.blockedResult(ctx, t, fmt.Sprintf("no example available for type %q (value kind %q)", t, node.ValueKind))
	}

	entry := newEntry(ctx, t, describeLocation(ctx, t), m.ExampleOf(value), m.Mutable{})

	return buildResult{
		entries:    []*pathEntry{entry},
		example:    m.ExampleOf(value),
		complete:   true,
		mutability: m.Mutable{},
		chains:     pkg.NewOrderedMap[string, chainExample](),
	}
}

// childState ties one child's build result to the label used in aggregated
// mutability reasons.
type childState struct {
	label  string
	result buildResult
}

// aggregateMutability implements the bottom-up rule: not mutable when every
// child is blocked, partially mutable when some are, mutable only when none
// are. Children with no example at all and partially mutable children both
// count as "blocked in part".
func aggregateMutability(children []childState) m.Mutability {
	if len(children) == 0 {
		return m.Mutable{}
	}

	var issues []string

	blockedCount := 0

	for _, child := range children {
		switch mut := child.result.mutability.(type) {
		case m.NotMutable:
			blockedCount++

			issues = append(issues, fmt.Sprintf("%s is not mutable (%s)", child.label, mut.Reason))
		case m.PartiallyMutable:
			issues = append(issues, fmt.Sprintf("%s is only partially mutable (%s)", child.label, mut.Reason))
		}
	}

	if len(issues) == 0 {
		return m.Mutable{}
	}

	reason := strings.Join(issues, "; ")

	if blockedCount == len(children) {
		return m.NotMutable{Reason: reason}
	}

	return m.PartiallyMutable{Reason: reason}
}

// exampleValue unwraps an example into a raw JSON tree. An absent option is a
// legitimate null value; an unavailable example has no value at all.
func exampleValue(example m.Example) (any, bool) {
	switch ex := example.(type) {
	case m.ExampleValue:
		return ex.Value, true
	case m.ExampleOptionAbsent:
		return nil, true
	default:
		return nil, false
	}
}

func (e *pathEngine) buildStruct(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	exampleMap := make(map[string]any, len(node.Fields))
	chains := pkg.NewOrderedMap[string, chainExample]()

	var (
		entries    []*pathEntry
		children   []childState
		incomplete []int
	)

	for i, field := range node.Fields {
		childRes, err := e.build(ctx.intoField(t, field), field.Type)
		if err != nil {
			return buildResult{}, err
		}

		entries = append(entries, childRes.entries...)
		children = append(children, childState{label: fmt.Sprintf("field `%s`", field.Name), result: childRes})

		if value, ok := exampleValue(childRes.example); ok {
			exampleMap[string(field.Name)] = value
		}

		if !childRes.complete {
			incomplete = append(incomplete, i)
		}
	}

	for i, field := range node.Fields {
		mergeWrappedChains(chains, children[i].result.chains, children, incomplete, i, func(value any) any {
			wrapped := cloneJSON(exampleMap).(map[string]any)
			wrapped[string(field.Name)] = value

			return wrapped
		})
	}

	mutability := aggregateMutability(children)

	example := m.Example(m.ExampleOf(exampleMap))
	if _, blocked := mutability.(m.NotMutable); blocked {
		example = m.ExampleUnavailable{}
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), example, mutability)

	return buildResult{
		entries:    append([]*pathEntry{own}, entries...),
		example:    example,
		complete:   len(incomplete) == 0 && !isBlocked(mutability),
		mutability: mutability,
		chains:     chains,
	}, nil
}

func (e *pathEngine) buildTuple(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	if len(node.Elements) == 0 {
		return buildResult{}, schemaErrorf(t, "tuple declares no elements")
	}

	values := make([]any, len(node.Elements))
	chains := pkg.NewOrderedMap[string, chainExample]()

	var (
		entries    []*pathEntry
		children   []childState
		incomplete []int
	)

	for i, element := range node.Elements {
		childRes, err := e.build(ctx.intoIndex(t, i, element), element)
		if err != nil {
			return buildResult{}, err
		}

		entries = append(entries, childRes.entries...)
		children = append(children, childState{label: fmt.Sprintf("element %d", i), result: childRes})

		if value, ok := exampleValue(childRes.example); ok {
			values[i] = value
		}

		if !childRes.complete {
			incomplete = append(incomplete, i)
		}
	}

	compose := func(vals []any) any {
		// A one-element tuple serializes as its bare element.
		if len(vals) == 1 {
			return vals[0]
		}

		return vals
	}

	for i := range node.Elements {
		index := i

		mergeWrappedChains(chains, children[i].result.chains, children, incomplete, i, func(value any) any {
			wrapped := cloneJSON(values).([]any)
			wrapped[index] = value

			return compose(wrapped)
		})
	}

	mutability := aggregateMutability(children)

	example := m.Example(m.ExampleOf(compose(values)))
	if isBlocked(mutability) {
		example = m.ExampleUnavailable{}
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), example, mutability)

	return buildResult{
		entries:    append([]*pathEntry{own}, entries...),
		example:    example,
		complete:   len(incomplete) == 0 && !isBlocked(mutability),
		mutability: mutability,
		chains:     chains,
	}, nil
}

// buildArray emits a path for every index of a fixed-size array. All indices
// share one structure, so variant chains reached through any index are
// realized by filling every element with the chain value; that keeps the root
// example valid for whichever index a consumer mutates.
func (e *pathEngine) buildArray(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	if node.Size <= 0 {
		return buildResult{}, schemaErrorf(t, "array declares no size")
	}

	chains := pkg.NewOrderedMap[string, chainExample]()

	var (
		entries  []*pathEntry
		children []childState
		first    buildResult
	)

	for i := 0; i < node.Size; i++ {
		childRes, err := e.build(ctx.intoIndex(t, i, node.Element), node.Element)
		if err != nil {
			return buildResult{}, err
		}

		if i == 0 {
			first = childRes
		}

		entries = append(entries, childRes.entries...)
		children = append(children, childState{label: fmt.Sprintf("element %d", i), result: childRes})
	}

	elementValue, hasValue := exampleValue(first.example)

	values := make([]any, node.Size)
	for i := range values {
		values[i] = cloneJSON(elementValue)
	}

	// Every index carries the element type's chains under its own key. The
	// realized value fills all indices, so the root example stays valid for
	// whichever index a consumer mutates.
	for _, child := range children {
		_ = child.result.chains.Range(func(key string, ce chainExample) error {
			if ce.reason != "" {
				chains.Set(key, ce)
				return nil
			}

			filled := make([]any, node.Size)
			for i := range filled {
				filled[i] = cloneJSON(ce.value)
			}

			chains.Set(key, chainExample{chain: ce.chain, value: filled})

			return nil
		})
	}

	mutability := aggregateMutability(children)

	example := m.Example(m.ExampleUnavailable{})
	if hasValue && !isBlocked(mutability) {
		example = m.ExampleOf(values)
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), example, mutability)

	return buildResult{
		entries:    append([]*pathEntry{own}, entries...),
		example:    example,
		complete:   first.complete && !isBlocked(mutability),
		mutability: mutability,
		chains:     chains,
	}, nil
}

// buildList emits the representative `.0` element subtree of a growable list.
// The list location itself is always mutable: an empty list is a legitimate
// complete value even when the element type is blocked.
func (e *pathEngine) buildList(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	childRes, err := e.build(ctx.intoIndex(t, 0, node.Element), node.Element)
	if err != nil {
		return buildResult{}, err
	}

	chains := pkg.NewOrderedMap[string, chainExample]()

	_ = childRes.chains.Range(func(key string, ce chainExample) error {
		if ce.reason != "" {
			chains.Set(key, ce)
			return nil
		}

		chains.Set(key, chainExample{chain: ce.chain, value: []any{ce.value}})

		return nil
	})

	value := []any{}
	if elementValue, ok := exampleValue(childRes.example); ok && childRes.complete {
		value = []any{elementValue}
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), m.ExampleOf(value), m.Mutable{})

	return buildResult{
		entries:    append([]*pathEntry{own}, childRes.entries...),
		example:    m.ExampleOf(value),
		complete:   true,
		mutability: m.Mutable{},
		chains:     chains,
	}, nil
}

// buildMap builds only the map's own location entry: entries are not
// statically addressable, so no descendant paths are emitted. Key and value
// are still recursed for the example, under map-entry scopes.
func (e *pathEngine) buildMap(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	keyRes, err := e.build(ctx.intoEntry(t, m.MapRoleKey, node.Key), node.Key)
	if err != nil {
		return buildResult{}, err
	}

	valueRes, err := e.build(ctx.intoEntry(t, m.MapRoleValue, node.Value), node.Value)
	if err != nil {
		return buildResult{}, err
	}

	value := map[string]any{}

	keyValue, keyOK := exampleValue(keyRes.example)
	valueValue, valueOK := exampleValue(valueRes.example)

	if keyOK && valueOK && keyRes.complete && valueRes.complete {
		value[fmt.Sprintf("%v", keyValue)] = valueValue
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), m.ExampleOf(value), m.Mutable{})

	return buildResult{
		entries:    []*pathEntry{own},
		example:    m.ExampleOf(value),
		complete:   true,
		mutability: m.Mutable{},
		chains:     pkg.NewOrderedMap[string, chainExample](),
	}, nil
}

func (e *pathEngine) buildSet(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	elementRes, err := e.build(ctx.intoEntry(t, m.MapRoleElement, node.Element), node.Element)
	if err != nil {
		return buildResult{}, err
	}

	value := []any{}
	if elementValue, ok := exampleValue(elementRes.example); ok && elementRes.complete {
		value = []any{elementValue}
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), m.ExampleOf(value), m.Mutable{})

	return buildResult{
		entries:    []*pathEntry{own},
		example:    m.ExampleOf(value),
		complete:   true,
		mutability: m.Mutable{},
		chains:     pkg.NewOrderedMap[string, chainExample](),
	}, nil
}

const optionPresenceNote = " (requires the option value to be present)"

// buildOption emits the option's own location entry and passes the element's
// descendant entries through unchanged apart from a presence note. The
// location is always mutable because null is always settable.
func (e *pathEngine) buildOption(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	elementRes, err := e.build(ctx.intoOption(), node.Element)
	if err != nil {
		return buildResult{}, err
	}

	example := m.Example(m.ExampleOptionAbsent{})
	if value, ok := exampleValue(elementRes.example); ok && elementRes.complete {
		example = m.ExampleOf(value)
	}

	own := newEntry(ctx, t, describeLocation(ctx, t), example, m.Mutable{})

	entries := []*pathEntry{own}

	for _, entry := range elementRes.entries {
		// The element's own location collapses into the option's entry.
		if entry.record.Path == ctx.path {
			continue
		}

		if !strings.HasSuffix(entry.record.Description, optionPresenceNote) {
			entry.record.Description += optionPresenceNote
		}

		entries = append(entries, entry)
	}

	return buildResult{
		entries:    entries,
		example:    example,
		complete:   true,
		mutability: m.Mutable{},
		chains:     elementRes.chains,
	}, nil
}

// mergeWrappedChains lifts one child's chain-to-example mapping to the parent
// level. A chain value can only be wrapped when every sibling of the child
// has a complete representative value; otherwise the chain entry records the
// blocking sibling instead of a value.
func mergeWrappedChains(into chainMap, from chainMap, children []childState, incomplete []int, childIndex int, wrap func(any) any) {
	_ = from.Range(func(key string, ce chainExample) error {
		if ce.reason != "" {
			into.Set(key, ce)
			return nil
		}

		for _, i := range incomplete {
			if i == childIndex {
				continue
			}

			into.Set(key, chainExample{
				chain: ce.chain,
				reason: fmt.Sprintf("cannot build a root example for variant chain %q: %s has no complete example",
					key, children[i].label),
			})

			return nil
		}

		into.Set(key, chainExample{chain: ce.chain, value: wrap(cloneJSON(ce.value))})

		return nil
	})
}

func isBlocked(mut m.Mutability) bool {
	_, blocked := mut.(m.NotMutable)
	return blocked
}

// cloneJSON deep-copies a JSON tree so chain wrapping never aliases the
// representative examples it was derived from.
func cloneJSON(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = cloneJSON(item)
		}

		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneJSON(item)
		}

		return out
	default:
		return v
	}
}
