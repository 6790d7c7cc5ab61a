package shape

// Constructor helpers for building shape nodes by hand. Generated or
// hand-written descriptors typically return these from DescribeShape.

// Struct describes a named composite with ordered named fields.
func Struct(name string, fields ...Field) Node {
	return Node{Kind: KindStruct, TypeName: name, Fields: fields}
}

// F is a shorthand for a named field.
func F(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Seq describes a variable-length ordered sequence.
func Seq(elems ...any) Node {
	return Node{Kind: KindSeq, Elems: elems}
}

// Tuple describes a fixed-arity positional container.
func Tuple(elems ...any) Node {
	return Node{Kind: KindTuple, Elems: elems}
}

// TupleStruct describes a named type with positional fields.
func TupleStruct(name string, elems ...any) Node {
	return Node{Kind: KindTupleStruct, TypeName: name, Elems: elems}
}

// Map describes an associative container.
func Map(entries ...Entry) Node {
	return Node{Kind: KindMap, Entries: entries}
}

// E is a shorthand for a map entry.
func E(key, value any) Entry {
	return Entry{Key: key, Value: value}
}

// Some describes a present optional wrapping v.
func Some(v any) Node {
	return Node{Kind: KindOption, Present: true, Inner: v}
}

// None describes an absent optional.
func None() Node {
	return Node{Kind: KindOption}
}

// Ref describes an indirection to v. The key, when non-nil, identifies the
// referent (pass the pointer itself); the walker uses it to reuse the
// referent's atom on revisit and to terminate on cycles. A nil key exports
// the referent fresh at every occurrence.
func Ref(key, v any) Node {
	return Node{Kind: KindRef, RefKey: key, Inner: v}
}

// Unit describes the unit value.
func Unit() Node {
	return Node{Kind: KindUnit}
}

// UnitStruct describes a named type carrying no data.
func UnitStruct(name string) Node {
	return Node{Kind: KindUnitStruct, TypeName: name}
}

// Newtype describes a named single-value wrapper.
func Newtype(name string, inner any) Node {
	return Node{Kind: KindNewtype, TypeName: name, Inner: inner}
}

// Prim describes a custom primitive leaf with an explicit type name and
// stringified label.
func Prim(typeName, label string) Node {
	return Node{Kind: KindPrimitive, TypeName: typeName, Label: label}
}

// UnitVariant describes an enum variant carrying no data. All occurrences
// of the same (enum, variant) pair share one atom within a session.
func UnitVariant(enum, variant string) Node {
	return Node{Kind: KindEnum, TypeName: enum, Variant: variant, VariantKind: KindUnit}
}

// StructVariant describes an enum variant with named fields.
func StructVariant(enum, variant string, fields ...Field) Node {
	return Node{Kind: KindEnum, TypeName: enum, Variant: variant, VariantKind: KindStruct, Fields: fields}
}

// TupleVariant describes an enum variant with positional fields.
func TupleVariant(enum, variant string, elems ...any) Node {
	return Node{Kind: KindEnum, TypeName: enum, Variant: variant, VariantKind: KindTuple, Elems: elems}
}

// NewtypeVariant describes an enum variant wrapping a single value.
func NewtypeVariant(enum, variant string, inner any) Node {
	return Node{Kind: KindEnum, TypeName: enum, Variant: variant, VariantKind: KindNewtype, Inner: inner}
}
