package shape

import (
	"fmt"
	"strconv"

	"github.com/sidprasad/caraspace/pkg/errors"
)

// =============================================================================
// Kind - Closed Shape Classification
// =============================================================================

// Kind classifies a value into exactly one shape category. The set is
// closed: the export walker has one handler per kind and rejects anything
// a descriptor does not map into it.
type Kind int

const (
	// KindPrimitive is a leaf value with no children (numbers, strings,
	// booleans, byte slices).
	KindPrimitive Kind = iota
	// KindStruct is a named composite with an ordered list of named fields.
	KindStruct
	// KindSeq is a variable-length ordered sequence (list/array-like).
	KindSeq
	// KindTuple is a fixed-arity positional container.
	KindTuple
	// KindTupleStruct is a named type with positional fields.
	KindTupleStruct
	// KindMap is an associative key-to-value container.
	KindMap
	// KindOption is an optional value, present or absent.
	KindOption
	// KindRef is an owning or shared pointer wrapper around another value.
	KindRef
	// KindUnit is the unit value, carrying no data.
	KindUnit
	// KindUnitStruct is a named type carrying no data.
	KindUnitStruct
	// KindNewtype is a named single-value wrapper.
	KindNewtype
	// KindEnum is a tagged union; the active variant's payload follows the
	// struct, tuple, newtype, or unit rules per its VariantKind.
	KindEnum
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindStruct:
		return "struct"
	case KindSeq:
		return "sequence"
	case KindTuple:
		return "tuple"
	case KindTupleStruct:
		return "tuple_struct"
	case KindMap:
		return "map"
	case KindOption:
		return "option"
	case KindRef:
		return "ref"
	case KindUnit:
		return "unit"
	case KindUnitStruct:
		return "unit_struct"
	case KindNewtype:
		return "newtype"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// =============================================================================
// Node - One Level of Decomposition
// =============================================================================

// Node describes how a value decomposes at one level. A descriptor returns
// a Node for its receiver; child values are held as opaque `any` and are
// classified in turn when the walker reaches them.
//
// Only the fields relevant to the Kind are populated; the rest stay zero.
type Node struct {
	Kind Kind

	// TypeName is the user type name for structs, tuple structs, newtypes,
	// unit structs, and enums, or the primitive kind name (e.g. "int",
	// "string") for primitives.
	TypeName string

	// Label is the stringified value for primitives. Composite labels are
	// derived by the walker (type or variant name, element counts).
	Label string

	// Singleton marks a zero-footprint primitive that maps to one shared
	// atom per (type, label) pair within a session (e.g. booleans).
	Singleton bool

	// Fields holds the ordered named fields of a struct or struct variant.
	Fields []Field

	// Elems holds the ordered elements of a sequence, tuple, tuple struct,
	// or tuple variant.
	Elems []any

	// Entries holds the key/value pairs of a map. No ordering is implied.
	Entries []Entry

	// Inner holds the wrapped value for options (when Present), refs, and
	// newtypes.
	Inner any

	// Present reports whether an option carries a value.
	Present bool

	// RefKey is an optional identity key for refs (typically the pointer
	// itself). When set, the walker tracks the referent by identity and
	// reuses its atom on revisit, which guarantees termination for shared
	// and cyclic references. When nil the referent is exported fresh at
	// every occurrence.
	RefKey any

	// Variant names the active variant of an enum.
	Variant string

	// VariantKind classifies the active variant's payload: KindStruct,
	// KindTuple, KindNewtype, or KindUnit.
	VariantKind Kind
}

// Field is one named field of a struct-like shape, in declaration order.
type Field struct {
	Name  string
	Value any
}

// Entry is one key/value pair of an associative shape.
// Keys are data, not field metadata: both sides are exported as ordinary
// values.
type Entry struct {
	Key   any
	Value any
}

// =============================================================================
// Descriptor - The Consumed Capability
// =============================================================================

// Descriptor is the externally supplied capability describing how a type
// decomposes into children. Each exportable user type implements it; the
// export engine performs no ambient reflection.
//
// The shape graph reachable through DescribeShape must be finite. Cyclic
// references must go through a KindRef node carrying a RefKey so the walker
// can terminate.
type Descriptor interface {
	DescribeShape() Node
}

// =============================================================================
// Describe - Value Classification
// =============================================================================

// Describe resolves the shape of an arbitrary value. Values are classified
// in order: an explicit Node is returned as-is, a Descriptor is asked to
// describe itself, and Go's basic types map to primitive leaves. Anything
// else has no shape descriptor and yields an UNSUPPORTED_SHAPE error.
func Describe(v any) (Node, error) {
	switch val := v.(type) {
	case Node:
		return val, nil
	case Descriptor:
		return val.DescribeShape(), nil
	case bool:
		// Booleans are zero-footprint: one shared atom per truth value.
		return Node{Kind: KindPrimitive, TypeName: "bool", Label: strconv.FormatBool(val), Singleton: true}, nil
	case string:
		return Node{Kind: KindPrimitive, TypeName: "string", Label: val}, nil
	case int:
		return Node{Kind: KindPrimitive, TypeName: "int", Label: strconv.Itoa(val)}, nil
	case int8:
		return Node{Kind: KindPrimitive, TypeName: "int8", Label: strconv.FormatInt(int64(val), 10)}, nil
	case int16:
		return Node{Kind: KindPrimitive, TypeName: "int16", Label: strconv.FormatInt(int64(val), 10)}, nil
	case int32:
		return Node{Kind: KindPrimitive, TypeName: "int32", Label: strconv.FormatInt(int64(val), 10)}, nil
	case int64:
		return Node{Kind: KindPrimitive, TypeName: "int64", Label: strconv.FormatInt(val, 10)}, nil
	case uint:
		return Node{Kind: KindPrimitive, TypeName: "uint", Label: strconv.FormatUint(uint64(val), 10)}, nil
	case uint8:
		return Node{Kind: KindPrimitive, TypeName: "uint8", Label: strconv.FormatUint(uint64(val), 10)}, nil
	case uint16:
		return Node{Kind: KindPrimitive, TypeName: "uint16", Label: strconv.FormatUint(uint64(val), 10)}, nil
	case uint32:
		return Node{Kind: KindPrimitive, TypeName: "uint32", Label: strconv.FormatUint(uint64(val), 10)}, nil
	case uint64:
		return Node{Kind: KindPrimitive, TypeName: "uint64", Label: strconv.FormatUint(val, 10)}, nil
	case float32:
		return Node{Kind: KindPrimitive, TypeName: "float32", Label: strconv.FormatFloat(float64(val), 'g', -1, 32)}, nil
	case float64:
		return Node{Kind: KindPrimitive, TypeName: "float64", Label: strconv.FormatFloat(val, 'g', -1, 64)}, nil
	case []byte:
		return Node{Kind: KindPrimitive, TypeName: "bytes", Label: fmt.Sprintf("%v", val)}, nil
	case nil:
		return Node{}, errors.New(errors.ErrCodeUnsupportedShape, "cannot export untyped nil")
	default:
		return Node{}, errors.New(errors.ErrCodeUnsupportedShape, "no shape descriptor for %T", v)
	}
}
