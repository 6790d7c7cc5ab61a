package decor

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/sidprasad/caraspace/pkg/errors"
)

// =============================================================================
// Annotation - Runtime Instance Annotation
// =============================================================================

// Annotation is a decorator attached to one specific instance at runtime.
// Type names the variant ("orientation", "atomColor", "flag", ...) and
// Params carries the variant's parameters, validated against the same
// schemas that govern type-level decorators.
type Annotation struct {
	Type   string
	Params map[string]any
}

// OrientationAnnotation builds an orientation annotation.
func OrientationAnnotation(selector string, directions ...string) Annotation {
	return Annotation{Type: "orientation", Params: map[string]any{
		"selector": selector, "directions": directions,
	}}
}

// CyclicAnnotation builds a cyclic layout annotation.
func CyclicAnnotation(selector, direction string) Annotation {
	return Annotation{Type: "cyclic", Params: map[string]any{
		"selector": selector, "direction": direction,
	}}
}

// AtomColorAnnotation builds an atom color annotation.
func AtomColorAnnotation(selector, value string) Annotation {
	return Annotation{Type: "atomColor", Params: map[string]any{
		"selector": selector, "value": value,
	}}
}

// SizeAnnotation builds a size annotation.
func SizeAnnotation(selector string, height, width int) Annotation {
	return Annotation{Type: "size", Params: map[string]any{
		"selector": selector, "height": height, "width": width,
	}}
}

// HideAtomAnnotation builds a hide-atom annotation.
func HideAtomAnnotation(selector string) Annotation {
	return Annotation{Type: "hideAtom", Params: map[string]any{
		"selector": selector,
	}}
}

// FlagAnnotation builds a flag annotation.
func FlagAnnotation(name string) Annotation {
	return Annotation{Type: "flag", Params: map[string]any{
		"name": name,
	}}
}

// =============================================================================
// Store - Per-Instance Annotation Overlay
// =============================================================================

// Store holds runtime annotations keyed by instance identity, not by type.
// Attaching is additive: every annotation is appended to the instance's
// log in arrival order and none is ever implicitly replaced. Entries are
// read, not consumed, at merge time.
//
// Instances are keyed by identity, so callers must attach to and merge
// from the same comparable value - in practice a pointer to the instance.
//
// Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	overlays map[any]*Set
	objCount int
}

// NewStore creates an empty annotation store. Most callers use the
// process-wide DefaultStore.
func NewStore() *Store {
	return &Store{overlays: make(map[any]*Set)}
}

// Attach appends an annotation to the instance's log. Selector strings are
// checked only syntactically here; whether they resolve against the
// instance's shape is validated lazily at merge time.
//
// Returns an INVALID_ANNOTATION error when the annotation type is unknown
// or its parameters do not match the schema.
func (s *Store) Attach(instance any, a Annotation) error {
	params := make([]string, 0, len(a.Params))
	for k := range a.Params {
		params = append(params, k)
	}
	sort.Strings(params)
	if err := ValidateParams(a.Type, params); err != nil {
		return err
	}
	if sel, ok := stringParam(a.Params, "selector"); ok {
		if err := errors.ValidateSelector(sel); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, d, err := s.decoratorLocked(a)
	if err != nil {
		return err
	}

	overlay, ok := s.overlays[instance]
	if !ok {
		overlay = &Set{}
		s.overlays[instance] = overlay
	}
	if c != nil {
		overlay.Constraints = append(overlay.Constraints, *c)
	}
	if d != nil {
		overlay.Directives = append(overlay.Directives, *d)
	}
	return nil
}

// InstanceSet returns a copy of the instance's annotation log as a Set,
// in arrival order. Returns an empty set for unannotated instances.
func (s *Store) InstanceSet(instance any) Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlay, ok := s.overlays[instance]
	if !ok {
		return Set{}
	}
	return overlay.Clone()
}

// Annotated reports whether the instance has at least one annotation.
func (s *Store) Annotated(instance any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	overlay, ok := s.overlays[instance]
	return ok && !overlay.IsEmpty()
}

// decoratorLocked converts a validated annotation into its constraint or
// directive form, substituting the "self" selector root with a unique
// per-attachment object marker.
func (s *Store) decoratorLocked(a Annotation) (*Constraint, *Directive, error) {
	sel, _ := stringParam(a.Params, "selector")
	sel = s.substituteSelfLocked(sel)

	switch a.Type {
	case "orientation":
		dirs, err := stringSliceParam(a.Params, "directions")
		if err != nil {
			return nil, nil, err
		}
		return &Constraint{Orientation: &Orientation{Selector: sel, Directions: dirs}}, nil, nil

	case "cyclic":
		dir, _ := stringParam(a.Params, "direction")
		return &Constraint{Cyclic: &Cyclic{Selector: sel, Direction: dir}}, nil, nil

	case "group":
		if field, ok := stringParam(a.Params, "field"); ok {
			groupOn, err := intParam(a.Params, "groupOn")
			if err != nil {
				return nil, nil, err
			}
			addToGroup, err := intParam(a.Params, "addToGroup")
			if err != nil {
				return nil, nil, err
			}
			return &Constraint{GroupField: &GroupField{
				Field: field, GroupOn: groupOn, AddToGroup: addToGroup, Selector: sel,
			}}, nil, nil
		}
		name, _ := stringParam(a.Params, "name")
		return &Constraint{GroupSelector: &GroupSelector{Selector: sel, Name: name}}, nil, nil

	case "atomColor":
		value, _ := stringParam(a.Params, "value")
		return nil, &Directive{AtomColor: &AtomColor{Selector: sel, Value: value}}, nil

	case "size":
		height, err := intParam(a.Params, "height")
		if err != nil {
			return nil, nil, err
		}
		width, err := intParam(a.Params, "width")
		if err != nil {
			return nil, nil, err
		}
		return nil, &Directive{Size: &Size{Selector: sel, Height: height, Width: width}}, nil

	case "icon":
		path, _ := stringParam(a.Params, "path")
		showLabels, err := boolParam(a.Params, "showLabels")
		if err != nil {
			return nil, nil, err
		}
		return nil, &Directive{Icon: &Icon{Selector: sel, Path: path, ShowLabels: showLabels}}, nil

	case "edgeColor":
		field, _ := stringParam(a.Params, "field")
		value, _ := stringParam(a.Params, "value")
		return nil, &Directive{EdgeColor: &EdgeColor{Field: field, Value: value, Selector: sel}}, nil

	case "projection":
		sig, _ := stringParam(a.Params, "sig")
		return nil, &Directive{Projection: &Projection{Sig: sig}}, nil

	case "attribute":
		field, _ := stringParam(a.Params, "field")
		return nil, &Directive{Attribute: &Attribute{Field: field, Selector: sel}}, nil

	case "hideField":
		field, _ := stringParam(a.Params, "field")
		return nil, &Directive{HideField: &HideField{Field: field, Selector: sel}}, nil

	case "hideAtom":
		return nil, &Directive{HideAtom: &HideAtom{Selector: sel}}, nil

	case "inferredEdge":
		name, _ := stringParam(a.Params, "name")
		return nil, &Directive{InferredEdge: &InferredEdge{Name: name, Selector: sel}}, nil

	case "flag":
		name, _ := stringParam(a.Params, "name")
		return nil, &Directive{Flag: name}, nil

	default:
		// Unreachable: ValidateParams rejects unknown types.
		return nil, nil, errors.New(errors.ErrCodeInvalidAnnotation, "unknown annotation type %q", a.Type)
	}
}

// substituteSelfLocked replaces the "self" selector root with a unique
// object marker so annotations from distinct attachments stay
// distinguishable in the merged document.
func (s *Store) substituteSelfLocked(selector string) string {
	if selector == "" || !strings.Contains(selector, "self") {
		return selector
	}
	s.objCount++
	return strings.ReplaceAll(selector, "self", fmt.Sprintf("obj_%d", s.objCount))
}

// =============================================================================
// Param Extraction
// =============================================================================

func stringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok && v != ""
}

func stringSliceParam(params map[string]any, key string) ([]string, error) {
	switch v := params[key].(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidAnnotation, "parameter %q must contain strings", key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidAnnotation, "parameter %q must be a string list", key)
	}
}

func intParam(params map[string]any, key string) (int, error) {
	switch v := params[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidAnnotation, "parameter %q must be an integer", key)
	}
}

func boolParam(params map[string]any, key string) (bool, error) {
	v, ok := params[key].(bool)
	if !ok {
		return false, errors.New(errors.ErrCodeInvalidAnnotation, "parameter %q must be a boolean", key)
	}
	return v, nil
}

// =============================================================================
// Default Store
// =============================================================================

// defaultStore is the process-wide annotation store.
var defaultStore = NewStore()

// DefaultStore returns the process-wide annotation store.
func DefaultStore() *Store {
	return defaultStore
}

// Attach appends an annotation to the instance's log in the process-wide
// store. See [Store.Attach].
func Attach(instance any, a Annotation) error {
	return defaultStore.Attach(instance, a)
}
