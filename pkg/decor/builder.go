package decor

// Builder assembles a decorator Set fluently. It is the typical body of a
// registry build function:
//
//	decor.Register("Company", func() decor.Set {
//	    return decor.NewBuilder().
//	        Orientation("self.employees", "above").
//	        Flag("hideDisconnected").
//	        Build()
//	})
type Builder struct {
	set Set
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Orientation adds an orientation constraint.
func (b *Builder) Orientation(selector string, directions ...string) *Builder {
	b.set.Constraints = append(b.set.Constraints, Constraint{
		Orientation: &Orientation{Selector: selector, Directions: directions},
	})
	return b
}

// Cyclic adds a cyclic layout constraint.
func (b *Builder) Cyclic(selector, direction string) *Builder {
	b.set.Constraints = append(b.set.Constraints, Constraint{
		Cyclic: &Cyclic{Selector: selector, Direction: direction},
	})
	return b
}

// GroupField adds a field-based grouping constraint. selector may be empty.
func (b *Builder) GroupField(field string, groupOn, addToGroup int, selector string) *Builder {
	b.set.Constraints = append(b.set.Constraints, Constraint{
		GroupField: &GroupField{Field: field, GroupOn: groupOn, AddToGroup: addToGroup, Selector: selector},
	})
	return b
}

// GroupSelector adds a selector-based grouping constraint.
func (b *Builder) GroupSelector(selector, name string) *Builder {
	b.set.Constraints = append(b.set.Constraints, Constraint{
		GroupSelector: &GroupSelector{Selector: selector, Name: name},
	})
	return b
}

// AtomColor adds an atom color directive.
func (b *Builder) AtomColor(selector, value string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		AtomColor: &AtomColor{Selector: selector, Value: value},
	})
	return b
}

// Size adds a size directive.
func (b *Builder) Size(selector string, height, width int) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		Size: &Size{Selector: selector, Height: height, Width: width},
	})
	return b
}

// Icon adds an icon directive.
func (b *Builder) Icon(selector, path string, showLabels bool) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		Icon: &Icon{Selector: selector, Path: path, ShowLabels: showLabels},
	})
	return b
}

// EdgeColor adds an edge color directive. selector may be empty.
func (b *Builder) EdgeColor(field, value, selector string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		EdgeColor: &EdgeColor{Field: field, Value: value, Selector: selector},
	})
	return b
}

// Projection adds a projection directive.
func (b *Builder) Projection(sig string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		Projection: &Projection{Sig: sig},
	})
	return b
}

// Attribute adds an attribute directive. selector may be empty.
func (b *Builder) Attribute(field, selector string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		Attribute: &Attribute{Field: field, Selector: selector},
	})
	return b
}

// HideField adds a hide-field directive. selector may be empty.
func (b *Builder) HideField(field, selector string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		HideField: &HideField{Field: field, Selector: selector},
	})
	return b
}

// HideAtom adds a hide-atom directive.
func (b *Builder) HideAtom(selector string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		HideAtom: &HideAtom{Selector: selector},
	})
	return b
}

// InferredEdge adds an inferred-edge directive.
func (b *Builder) InferredEdge(name, selector string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{
		InferredEdge: &InferredEdge{Name: name, Selector: selector},
	})
	return b
}

// Flag adds a flag directive.
func (b *Builder) Flag(name string) *Builder {
	b.set.Directives = append(b.set.Directives, Directive{Flag: name})
	return b
}

// Build returns the accumulated set.
func (b *Builder) Build() Set {
	return b.set
}
