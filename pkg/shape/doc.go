// Package shape defines the descriptor capability the export engine
// consumes to decompose values.
//
// The export walker performs no ambient reflection: each exportable type
// implements [Descriptor], returning a [Node] that classifies the value
// into one of the closed shape kinds (primitive, struct, sequence, tuple,
// map, option, ref, newtype, enum) and lists its children. Go's basic
// types are classified automatically by [Describe].
//
// Constructor helpers ([Struct], [Seq], [Map], [Some], [Ref], ...) make
// hand-written descriptors short:
//
//	type Person struct {
//	    Name string
//	    Age  int
//	}
//
//	func (p Person) DescribeShape() shape.Node {
//	    return shape.Struct("Person",
//	        shape.F("name", p.Name),
//	        shape.F("age", p.Age),
//	    )
//	}
//
// The shape graph reachable through descriptors must be finite at the
// level of structural containment. Shared or cyclic references must be
// expressed with [Ref] and an identity key so traversal terminates.
package shape
