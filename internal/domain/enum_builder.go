package domain

import (
	"fmt"
	"strings"

	m "mutapath.dev/pkg/mutapath/internal/model"
	"mutapath.dev/pkg/mutapath/pkg"
)

// variantGroup collects the variants of one enum type that share a structural
// signature. The grouping policy is whole-signature grouping: one mutation
// path per unique (signature, field position) pair, with every variant of the
// group listed as applicable. The compound signature key keeps same-named
// fields of different types in separate groups.
type variantGroup struct {
	signature m.VariantSignature
	variants  []m.VariantName
}

func (g *variantGroup) representative() m.VariantName {
	return g.variants[0]
}

func signatureOf(t m.TypeName, variant m.SchemaVariant) (m.VariantSignature, error) {
	switch {
	case len(variant.Elements) > 0 && len(variant.Fields) > 0:
		return m.VariantSignature{}, schemaErrorf(t, "variant %q declares both elements and fields", variant.Name)
	case len(variant.Elements) > 0:
		return m.TupleSignature(variant.Elements), nil
	case len(variant.Fields) > 0:
		fields := make([]m.SignatureField, len(variant.Fields))
		for i, field := range variant.Fields {
			fields[i] = m.SignatureField{Name: field.Name, Type: field.Type}
		}

		return m.RecordSignature(fields), nil
	default:
		return m.UnitSignature(), nil
	}
}

// groupVariants groups an enum's variants by signature key, preserving
// declaration order both across groups and within each group. The first
// variant of a group is its deterministic representative.
func groupVariants(t m.TypeName, node *m.SchemaNode) (pkg.OrderedMap[string, *variantGroup], error) {
	groups := pkg.NewOrderedMap[string, *variantGroup]()

	for _, variant := range node.Variants {
		signature, err := signatureOf(t, variant)
		if err != nil {
			return nil, err
		}

		key := signature.Key()

		group, ok := groups.Get(key)
		if !ok {
			group = &variantGroup{signature: signature}
			groups.Set(key, group)
		}

		group.variants = append(group.variants, m.QualifiedVariant(t, variant.Name))
	}

	return groups, nil
}

// wrapVariant wraps an assembled payload under a variant's tag: a unit
// variant is its bare name, a one-element tuple collapses to its element, and
// everything else nests under the name.
func wrapVariant(variant m.VariantName, signature m.VariantSignature, payload any) any {
	name := variant.Short()

	switch signature.Kind {
	case m.SignatureUnit:
		return name
	case m.SignatureTuple:
		elements := payload.([]any)
		if len(elements) == 1 {
			return map[string]any{name: elements[0]}
		}

		return map[string]any{name: elements}
	default:
		return map[string]any{name: payload}
	}
}

// groupBuild is the per-group outcome of recursing into the representative
// variant.
type groupBuild struct {
	group      *variantGroup
	wrapped    any
	complete   bool
	mutability m.Mutability
	entries    []*pathEntry
	children   []childState
	incomplete []int
	childChain []chainMap
	positions  []func(any) any
}

// buildEnum is the variant-type builder. For every signature group it
// generates one set of paths from the representative variant, classifies the
// group's constructibility, and assembles the bottom-up chain-to-root-example
// mapping that lets a consumer reach any nested path with a single root
// replacement.
func (e *pathEngine) buildEnum(ctx buildContext, t m.TypeName, node *m.SchemaNode) (buildResult, error) {
	if len(node.Variants) == 0 {
		return e.blockedResult(ctx, t, fmt.Sprintf("enum %q declares no variants", t)), nil
	}

	groups, err := groupVariants(t, node)
	if err != nil {
		return buildResult{}, err
	}

	chains := pkg.NewOrderedMap[string, chainExample]()

	var (
		entries     []*pathEntry
		groupStates []childState
		builds      []*groupBuild
		buildErr    error
	)

	_ = groups.Range(func(_ string, group *variantGroup) error {
		gb, err := e.buildGroup(ctx, t, group)
		if err != nil {
			buildErr = err
			return err
		}

		builds = append(builds, gb)
		groupStates = append(groupStates, childState{
			label:  fmt.Sprintf("variant `%s`", gb.group.representative().Short()),
			result: buildResult{mutability: gb.mutability, complete: gb.complete},
		})

		return nil
	})

	if buildErr != nil {
		return buildResult{}, buildErr
	}

	for _, gb := range builds {
		rep := gb.group.representative()
		extended := append(cloneSelections(ctx.chain), m.VariantSelection{Variant: rep, Location: ctx.path, Example: gb.wrapped})
		baseKey := selectionKey(extended)

		// The group's own location entry: one per signature group, never one
		// per variant, so shared-signature variants do not duplicate paths.
		own := newEntry(ctx, t, describeGroup(ctx, t, gb.group), wrappedExample(gb), gb.mutability)
		if own.enum == nil {
			own.enum = &enumEntryData{chain: cloneSelections(ctx.chain)}
		}

		own.enum.applicable = gb.group.variants
		entries = append(entries, own)

		// Applicable variants propagate to direct children of this variant
		// level only; deeper descendants already carry the variants of their
		// own enclosing level. Every descendant gets this level's selection
		// example filled in.
		for _, entry := range gb.entries {
			entry.enum.chain[len(ctx.chain)].Example = gb.wrapped

			if len(entry.enum.chain) == len(ctx.chain)+1 {
				entry.enum.applicable = gb.group.variants
			}
		}

		entries = append(entries, gb.entries...)

		if gb.complete {
			chains.Set(baseKey, chainExample{chain: selectionNames(extended), value: cloneJSON(gb.wrapped)})
		} else {
			reason := constructReason(rep, gb.mutability)
			if reason == "" {
				reason = fmt.Sprintf("no complete example exists for variant %s", rep)
			}

			chains.Set(baseKey, chainExample{chain: selectionNames(extended), reason: reason})
		}

		for i, childChains := range gb.childChain {
			mergeWrappedChains(chains, childChains, gb.children, gb.incomplete, i, gb.positions[i])
		}
	}

	mutability := aggregateMutability(groupStates)

	example, complete := representativeEnumExample(builds)
	if isBlocked(mutability) {
		example = m.ExampleUnavailable{}
		complete = false
	}

	return buildResult{
		entries:    entries,
		example:    example,
		complete:   complete,
		mutability: mutability,
		chains:     chains,
	}, nil
}

// buildGroup recurses into the representative variant's payload exactly as a
// record or tuple builder would, with the variant chain extended by this
// level's selection.
func (e *pathEngine) buildGroup(ctx buildContext, t m.TypeName, group *variantGroup) (*groupBuild, error) {
	rep := group.representative()
	gb := &groupBuild{group: group}

	childBase := ctx
	childBase.chain = append(cloneSelections(ctx.chain), m.VariantSelection{Variant: rep, Location: ctx.path})

	sigKey := group.signature.Key()

	switch group.signature.Kind {
	case m.SignatureUnit:
		gb.wrapped = wrapVariant(rep, group.signature, nil)
		gb.complete = true
		gb.mutability = m.Mutable{}

		return gb, nil

	case m.SignatureTuple:
		values := make([]any, len(group.signature.Elements))

		for i, element := range group.signature.Elements {
			childCtx := childBase.intoIndex(t, i, element)
			childCtx.scope.sigKey = sigKey
			childCtx.scope.index = i

			childRes, err := e.build(childCtx, element)
			if err != nil {
				return nil, err
			}

			if value, ok := exampleValue(childRes.example); ok {
				values[i] = value
			}

			gb.appendChild(fmt.Sprintf("element %d", i), childRes)

			index := i

			gb.positions = append(gb.positions, func(value any) any {
				payload := cloneJSON(values).([]any)
				payload[index] = value

				return wrapVariant(rep, group.signature, payload)
			})
		}

		gb.wrapped = wrapVariant(rep, group.signature, values)

	default:
		payload := make(map[string]any, len(group.signature.Fields))

		for i, field := range group.signature.Fields {
			childCtx := childBase.intoField(t, m.SchemaField{Name: field.Name, Type: field.Type})
			childCtx.scope.sigKey = sigKey
			childCtx.scope.index = i

			childRes, err := e.build(childCtx, field.Type)
			if err != nil {
				return nil, err
			}

			if value, ok := exampleValue(childRes.example); ok {
				payload[string(field.Name)] = value
			}

			gb.appendChild(fmt.Sprintf("field `%s`", field.Name), childRes)

			name := string(field.Name)

			gb.positions = append(gb.positions, func(value any) any {
				wrapped := cloneJSON(payload).(map[string]any)
				wrapped[name] = value

				return wrapVariant(rep, group.signature, wrapped)
			})
		}

		gb.wrapped = wrapVariant(rep, group.signature, payload)
	}

	gb.mutability = aggregateMutability(gb.children)
	gb.complete = len(gb.incomplete) == 0 && !isBlocked(gb.mutability)

	return gb, nil
}

func (gb *groupBuild) appendChild(label string, res buildResult) {
	if !res.complete {
		gb.incomplete = append(gb.incomplete, len(gb.children))
	}

	gb.children = append(gb.children, childState{label: label, result: res})
	gb.childChain = append(gb.childChain, res.chains)
	gb.entries = append(gb.entries, res.entries...)
}

func wrappedExample(gb *groupBuild) m.Example {
	if isBlocked(gb.mutability) {
		return m.ExampleUnavailable{}
	}

	return m.ExampleOf(gb.wrapped)
}

// constructReason renders the per-variant constructibility verdict: a unit or
// fully mutable variant is constructible; a partially mutable one can only be
// mutated in place, with the blocking fields named; a blocked one can never
// be constructed.
func constructReason(variant m.VariantName, mut m.Mutability) string {
	switch v := mut.(type) {
	case m.PartiallyMutable:
		return fmt.Sprintf("variant %s can only be mutated on an already-placed instance: %s", variant, v.Reason)
	case m.NotMutable:
		return fmt.Sprintf("variant %s cannot be constructed: %s", variant, v.Reason)
	default:
		return ""
	}
}

// representativeEnumExample picks the enum's upward-flowing example: the
// first group with a complete value, falling back to the first group.
func representativeEnumExample(builds []*groupBuild) (m.Example, bool) {
	for _, gb := range builds {
		if gb.complete {
			return m.ExampleOf(gb.wrapped), true
		}
	}

	first := builds[0]

	if isBlocked(first.mutability) {
		return m.ExampleUnavailable{}, false
	}

	return m.ExampleOf(first.wrapped), false
}

func describeGroup(ctx buildContext, t m.TypeName, group *variantGroup) string {
	names := make([]string, len(group.variants))
	for i, variant := range group.variants {
		names[i] = variant.Short()
	}

	return fmt.Sprintf("%s using the %s variant shape", describeLocation(ctx, t), strings.Join(names, " | "))
}

func selectionNames(chain []m.VariantSelection) m.VariantChain {
	names := make(m.VariantChain, len(chain))
	for i, sel := range chain {
		names[i] = sel.Variant
	}

	return names
}
