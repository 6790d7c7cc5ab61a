package decor

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Set - Ordered Decorator Collection
// =============================================================================

// Set is an ordered collection of layout constraints and visual directives
// for a type or an instance. Order is significant: merged output lists all
// type-level entries before instance-level entries, preserving arrival
// order within each group.
type Set struct {
	Constraints []Constraint `yaml:"constraints" json:"constraints"`
	Directives  []Directive  `yaml:"directives" json:"directives"`
}

// IsEmpty reports whether the set holds no decorators.
func (s Set) IsEmpty() bool {
	return len(s.Constraints) == 0 && len(s.Directives) == 0
}

// Len returns the total number of decorators in the set.
func (s Set) Len() int {
	return len(s.Constraints) + len(s.Directives)
}

// Extend appends all decorators from other, preserving order.
func (s *Set) Extend(other Set) {
	s.Constraints = append(s.Constraints, other.Constraints...)
	s.Directives = append(s.Directives, other.Directives...)
}

// Clone returns a copy of the set with freshly allocated slices.
// Parameter structs are shared; they are treated as immutable once stored.
func (s Set) Clone() Set {
	out := Set{}
	if len(s.Constraints) > 0 {
		out.Constraints = make([]Constraint, len(s.Constraints))
		copy(out.Constraints, s.Constraints)
	}
	if len(s.Directives) > 0 {
		out.Directives = make([]Directive, len(s.Directives))
		copy(out.Directives, s.Directives)
	}
	return out
}

// MarshalDocument renders the set as a YAML decorator document:
// a `constraints:` list followed by a `directives:` list, each entry a
// single-key mapping named after its variant.
func (s Set) MarshalDocument() ([]byte, error) {
	return yaml.Marshal(s)
}

// =============================================================================
// Constraint - Layout Constraint Variants
// =============================================================================

// Constraint is a layout constraint. Exactly one variant field is set;
// serialization emits a single-key mapping named after that variant.
type Constraint struct {
	Orientation   *Orientation   `yaml:"orientation,omitempty" json:"orientation,omitempty"`
	Cyclic        *Cyclic        `yaml:"cyclic,omitempty" json:"cyclic,omitempty"`
	GroupField    *GroupField    `yaml:"-" json:"-"`
	GroupSelector *GroupSelector `yaml:"-" json:"-"`
}

// Orientation places the selected atoms along the given directions
// (e.g. "above", "left") relative to their parent.
type Orientation struct {
	Selector   string   `yaml:"selector" json:"selector"`
	Directions []string `yaml:"directions" json:"directions"`
}

// Cyclic lays the selected atoms out on a cycle in the given direction.
type Cyclic struct {
	Selector  string `yaml:"selector" json:"selector"`
	Direction string `yaml:"direction" json:"direction"`
}

// GroupField groups atoms by a relation field: tuples of the named field
// are grouped on participant position GroupOn, adding the participant at
// position AddToGroup.
type GroupField struct {
	Field      string `yaml:"field" json:"field"`
	GroupOn    int    `yaml:"groupOn" json:"groupOn"`
	AddToGroup int    `yaml:"addToGroup" json:"addToGroup"`
	Selector   string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// GroupSelector collects the selected atoms into a named group.
type GroupSelector struct {
	Selector string `yaml:"selector" json:"selector"`
	Name     string `yaml:"name" json:"name"`
}

// Variant returns the wire name of the active constraint variant.
// Both group forms serialize under the "group" key.
func (c Constraint) Variant() string {
	switch {
	case c.Orientation != nil:
		return "orientation"
	case c.Cyclic != nil:
		return "cyclic"
	case c.GroupField != nil, c.GroupSelector != nil:
		return "group"
	default:
		return ""
	}
}

// Selector returns the constraint's selector, or "" when the active
// variant carries none.
func (c Constraint) Selector() string {
	switch {
	case c.Orientation != nil:
		return c.Orientation.Selector
	case c.Cyclic != nil:
		return c.Cyclic.Selector
	case c.GroupField != nil:
		return c.GroupField.Selector
	case c.GroupSelector != nil:
		return c.GroupSelector.Selector
	default:
		return ""
	}
}

// MarshalYAML implements yaml.Marshaler.
func (c Constraint) MarshalYAML() (any, error) {
	return c.wire(), nil
}

// MarshalJSON implements json.Marshaler.
func (c Constraint) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.wire())
}

func (c Constraint) wire() any {
	if c.GroupSelector != nil {
		return struct {
			Group *GroupSelector `yaml:"group" json:"group"`
		}{c.GroupSelector}
	}
	if c.GroupField != nil {
		return struct {
			Group *GroupField `yaml:"group" json:"group"`
		}{c.GroupField}
	}
	return struct {
		Orientation *Orientation `yaml:"orientation,omitempty" json:"orientation,omitempty"`
		Cyclic      *Cyclic      `yaml:"cyclic,omitempty" json:"cyclic,omitempty"`
	}{c.Orientation, c.Cyclic}
}

// =============================================================================
// Directive - Visual Directive Variants
// =============================================================================

// Directive is a visual or behavioral directive. Exactly one variant field
// is set; serialization emits a single-key mapping named after that variant.
type Directive struct {
	AtomColor    *AtomColor    `yaml:"atomColor,omitempty" json:"atomColor,omitempty"`
	Size         *Size         `yaml:"size,omitempty" json:"size,omitempty"`
	Icon         *Icon         `yaml:"icon,omitempty" json:"icon,omitempty"`
	EdgeColor    *EdgeColor    `yaml:"edgeColor,omitempty" json:"edgeColor,omitempty"`
	Projection   *Projection   `yaml:"projection,omitempty" json:"projection,omitempty"`
	Attribute    *Attribute    `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	HideField    *HideField    `yaml:"hideField,omitempty" json:"hideField,omitempty"`
	HideAtom     *HideAtom     `yaml:"hideAtom,omitempty" json:"hideAtom,omitempty"`
	InferredEdge *InferredEdge `yaml:"inferredEdge,omitempty" json:"inferredEdge,omitempty"`
	Flag         string        `yaml:"flag,omitempty" json:"flag,omitempty"`
}

// AtomColor colors the selected atoms.
type AtomColor struct {
	Selector string `yaml:"selector" json:"selector"`
	Value    string `yaml:"value" json:"value"`
}

// Size fixes the rendered dimensions of the selected atoms.
type Size struct {
	Selector string `yaml:"selector" json:"selector"`
	Height   int    `yaml:"height" json:"height"`
	Width    int    `yaml:"width" json:"width"`
}

// Icon renders the selected atoms with an icon.
type Icon struct {
	Selector   string `yaml:"selector" json:"selector"`
	Path       string `yaml:"path" json:"path"`
	ShowLabels bool   `yaml:"showLabels" json:"showLabels"`
}

// EdgeColor colors edges of the named relation field.
type EdgeColor struct {
	Field    string `yaml:"field" json:"field"`
	Value    string `yaml:"value" json:"value"`
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// Projection projects the diagram over the named signature.
type Projection struct {
	Sig string `yaml:"sig" json:"sig"`
}

// Attribute renders the named field as an inline attribute instead of an edge.
type Attribute struct {
	Field    string `yaml:"field" json:"field"`
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// HideField suppresses edges of the named field.
type HideField struct {
	Field    string `yaml:"field" json:"field"`
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`
}

// HideAtom suppresses the selected atoms.
type HideAtom struct {
	Selector string `yaml:"selector" json:"selector"`
}

// InferredEdge draws a named synthetic edge between the selected atoms.
type InferredEdge struct {
	Name     string `yaml:"name" json:"name"`
	Selector string `yaml:"selector" json:"selector"`
}

// Variant returns the wire name of the active directive variant.
func (d Directive) Variant() string {
	switch {
	case d.AtomColor != nil:
		return "atomColor"
	case d.Size != nil:
		return "size"
	case d.Icon != nil:
		return "icon"
	case d.EdgeColor != nil:
		return "edgeColor"
	case d.Projection != nil:
		return "projection"
	case d.Attribute != nil:
		return "attribute"
	case d.HideField != nil:
		return "hideField"
	case d.HideAtom != nil:
		return "hideAtom"
	case d.InferredEdge != nil:
		return "inferredEdge"
	case d.Flag != "":
		return "flag"
	default:
		return ""
	}
}

// Selector returns the directive's selector, or "" when the active variant
// carries none (projection, flag) or the optional selector is unset.
func (d Directive) Selector() string {
	switch {
	case d.AtomColor != nil:
		return d.AtomColor.Selector
	case d.Size != nil:
		return d.Size.Selector
	case d.Icon != nil:
		return d.Icon.Selector
	case d.EdgeColor != nil:
		return d.EdgeColor.Selector
	case d.Attribute != nil:
		return d.Attribute.Selector
	case d.HideField != nil:
		return d.HideField.Selector
	case d.HideAtom != nil:
		return d.HideAtom.Selector
	case d.InferredEdge != nil:
		return d.InferredEdge.Selector
	default:
		return ""
	}
}
