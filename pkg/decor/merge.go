package decor

import (
	"strings"

	"github.com/sidprasad/caraspace/pkg/errors"
	"github.com/sidprasad/caraspace/pkg/shape"
)

// =============================================================================
// Merge - Type-Level Set Plus Instance Overlay
// =============================================================================

// Combined merges the process-wide type-level decorator set for the
// instance's type with the instance's own annotation log from the
// process-wide store. See CombinedWith for the merge rules.
func Combined(instance shape.Descriptor) (Set, error) {
	return CombinedWith(Default(), DefaultStore(), instance)
}

// CombinedWith merges decorators for one instance: the type-level set
// registered for the instance's type name comes first, followed by the
// instance's annotation log, each preserving arrival order. A missing
// registry entry or an empty log contributes nothing; neither side is an
// error on its own.
//
// Instance annotation selectors are resolved against the instance's shape
// here, at merge time. A selector whose field path does not exist in the
// shape yields an UNRESOLVED_SELECTOR error.
func CombinedWith(reg *Registry, store *Store, instance shape.Descriptor) (Set, error) {
	node := instance.DescribeShape()

	out := Set{}
	if typeSet, ok := reg.Lookup(node.TypeName); ok {
		out.Extend(typeSet)
	}

	overlay := store.InstanceSet(instance)
	for _, c := range overlay.Constraints {
		if err := ResolveSelector(c.Selector(), node); err != nil {
			return Set{}, err
		}
	}
	for _, d := range overlay.Directives {
		if err := ResolveSelector(d.Selector(), node); err != nil {
			return Set{}, err
		}
	}
	out.Extend(overlay)

	return out, nil
}

// Document renders the merged decorator set for the instance as a YAML
// decorator document.
func Document(instance shape.Descriptor) ([]byte, error) {
	set, err := Combined(instance)
	if err != nil {
		return nil, err
	}
	return set.MarshalDocument()
}

// =============================================================================
// Selector Resolution
// =============================================================================

// ResolveSelector walks a dotted selector path against a value's shape.
// The head segment names the annotated object itself ("self" before
// substitution, "obj_N" after) and is not checked; every later segment
// must name a field reachable from the previous one. An empty selector
// resolves trivially.
func ResolveSelector(selector string, node shape.Node) error {
	if selector == "" {
		return nil
	}

	segments := strings.Split(selector, ".")
	cur := node
	for _, seg := range segments[1:] {
		next, err := resolveField(cur, seg)
		if err != nil {
			return errors.New(errors.ErrCodeUnresolvedSelector,
				"selector %q does not resolve on %s: %s", selector, node.TypeName, errors.UserMessage(err))
		}
		cur = next
	}
	return nil
}

// resolveField finds the named field in a struct-shaped node, looking
// through option, reference, and newtype wrappers first.
func resolveField(node shape.Node, name string) (shape.Node, error) {
	node, err := unwrap(node)
	if err != nil {
		return shape.Node{}, err
	}

	structLike := node.Kind == shape.KindStruct ||
		(node.Kind == shape.KindEnum && node.VariantKind == shape.KindStruct)
	if !structLike {
		return shape.Node{}, errors.New(errors.ErrCodeUnresolvedSelector,
			"%s value has no fields", node.Kind)
	}

	for _, f := range node.Fields {
		if f.Name != name {
			continue
		}
		child, err := shape.Describe(f.Value)
		if err != nil {
			return shape.Node{}, err
		}
		return child, nil
	}
	return shape.Node{}, errors.New(errors.ErrCodeUnresolvedSelector,
		"no field %q on %s", name, node.TypeName)
}

// unwrap peels transparent wrappers: a present option, a tracked
// reference, or a newtype, recursively. An absent option stops resolution.
func unwrap(node shape.Node) (shape.Node, error) {
	for {
		switch node.Kind {
		case shape.KindOption:
			if !node.Present {
				return shape.Node{}, errors.New(errors.ErrCodeUnresolvedSelector, "value is absent")
			}
		case shape.KindRef, shape.KindNewtype:
			// fall through to Inner
		default:
			return node, nil
		}
		inner, err := shape.Describe(node.Inner)
		if err != nil {
			return shape.Node{}, err
		}
		node = inner
	}
}
