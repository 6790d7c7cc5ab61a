package shape

import (
	"testing"

	"github.com/sidprasad/caraspace/pkg/errors"
)

type point struct{ X, Y int }

func (p point) DescribeShape() Node {
	return Struct("Point", F("x", p.X), F("y", p.Y))
}

func TestDescribePrimitives(t *testing.T) {
	tests := []struct {
		name          string
		value         any
		wantType      string
		wantLabel     string
		wantSingleton bool
	}{
		{name: "BoolTrue", value: true, wantType: "bool", wantLabel: "true", wantSingleton: true},
		{name: "BoolFalse", value: false, wantType: "bool", wantLabel: "false", wantSingleton: true},
		{name: "String", value: "hello", wantType: "string", wantLabel: "hello"},
		{name: "Int", value: 42, wantType: "int", wantLabel: "42"},
		{name: "IntNegative", value: -7, wantType: "int", wantLabel: "-7"},
		{name: "Int64", value: int64(1 << 40), wantType: "int64", wantLabel: "1099511627776"},
		{name: "Uint8", value: uint8(255), wantType: "uint8", wantLabel: "255"},
		{name: "Float64", value: 2.5, wantType: "float64", wantLabel: "2.5"},
		{name: "Float64Whole", value: 3.0, wantType: "float64", wantLabel: "3"},
		{name: "Float32", value: float32(0.5), wantType: "float32", wantLabel: "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Describe(tt.value)
			if err != nil {
				t.Fatalf("Describe(%v) error = %v", tt.value, err)
			}
			if node.Kind != KindPrimitive {
				t.Fatalf("Kind = %v, want primitive", node.Kind)
			}
			if node.TypeName != tt.wantType {
				t.Errorf("TypeName = %q, want %q", node.TypeName, tt.wantType)
			}
			if node.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", node.Label, tt.wantLabel)
			}
			if node.Singleton != tt.wantSingleton {
				t.Errorf("Singleton = %v, want %v", node.Singleton, tt.wantSingleton)
			}
		})
	}
}

func TestDescribeDescriptor(t *testing.T) {
	node, err := Describe(point{X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if node.Kind != KindStruct || node.TypeName != "Point" {
		t.Fatalf("got kind=%v type=%q, want struct Point", node.Kind, node.TypeName)
	}
	if len(node.Fields) != 2 || node.Fields[0].Name != "x" {
		t.Errorf("unexpected fields: %+v", node.Fields)
	}
}

func TestDescribeNodePassthrough(t *testing.T) {
	in := Seq(1, 2, 3)
	node, err := Describe(in)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if node.Kind != KindSeq || len(node.Elems) != 3 {
		t.Errorf("got kind=%v elems=%d, want sequence of 3", node.Kind, len(node.Elems))
	}
}

func TestDescribeUnsupported(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{name: "Nil", value: nil},
		{name: "Channel", value: make(chan int)},
		{name: "Func", value: func() {}},
		{name: "PlainStruct", value: struct{ A int }{A: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Describe(tt.value)
			if err == nil {
				t.Fatal("Describe() should fail")
			}
			if !errors.Is(err, errors.ErrCodeUnsupportedShape) {
				t.Errorf("error code = %v, want UNSUPPORTED_SHAPE", errors.GetCode(err))
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		wantKind Kind
		check    func(t *testing.T, n Node)
	}{
		{
			name: "Some", node: Some(5), wantKind: KindOption,
			check: func(t *testing.T, n Node) {
				if !n.Present || n.Inner != 5 {
					t.Errorf("Some(5) = %+v", n)
				}
			},
		},
		{
			name: "None", node: None(), wantKind: KindOption,
			check: func(t *testing.T, n Node) {
				if n.Present {
					t.Error("None() should be absent")
				}
			},
		},
		{
			name: "Ref", node: Ref("key", 7), wantKind: KindRef,
			check: func(t *testing.T, n Node) {
				if n.RefKey != "key" || n.Inner != 7 {
					t.Errorf("Ref() = %+v", n)
				}
			},
		},
		{name: "Unit", node: Unit(), wantKind: KindUnit},
		{
			name: "UnitStruct", node: UnitStruct("Marker"), wantKind: KindUnitStruct,
			check: func(t *testing.T, n Node) {
				if n.TypeName != "Marker" {
					t.Errorf("TypeName = %q", n.TypeName)
				}
			},
		},
		{
			name: "Newtype", node: Newtype("Meters", 5), wantKind: KindNewtype,
			check: func(t *testing.T, n Node) {
				if n.TypeName != "Meters" || n.Inner != 5 {
					t.Errorf("Newtype() = %+v", n)
				}
			},
		},
		{
			name: "UnitVariant", node: UnitVariant("Status", "Active"), wantKind: KindEnum,
			check: func(t *testing.T, n Node) {
				if n.Variant != "Active" || n.VariantKind != KindUnit {
					t.Errorf("UnitVariant() = %+v", n)
				}
			},
		},
		{
			name: "StructVariant", node: StructVariant("Shape", "Circle", F("radius", 2)), wantKind: KindEnum,
			check: func(t *testing.T, n Node) {
				if n.VariantKind != KindStruct || len(n.Fields) != 1 {
					t.Errorf("StructVariant() = %+v", n)
				}
			},
		},
		{
			name: "TupleVariant", node: TupleVariant("Shape", "Pair", 1, 2), wantKind: KindEnum,
			check: func(t *testing.T, n Node) {
				if n.VariantKind != KindTuple || len(n.Elems) != 2 {
					t.Errorf("TupleVariant() = %+v", n)
				}
			},
		},
		{
			name: "NewtypeVariant", node: NewtypeVariant("Wrapper", "Id", 9), wantKind: KindEnum,
			check: func(t *testing.T, n Node) {
				if n.VariantKind != KindNewtype || n.Inner != 9 {
					t.Errorf("NewtypeVariant() = %+v", n)
				}
			},
		},
		{
			name: "Map", node: Map(E("k", "v")), wantKind: KindMap,
			check: func(t *testing.T, n Node) {
				if len(n.Entries) != 1 || n.Entries[0].Key != "k" {
					t.Errorf("Map() = %+v", n)
				}
			},
		},
		{
			name: "Prim", node: Prim("duration", "5s"), wantKind: KindPrimitive,
			check: func(t *testing.T, n Node) {
				if n.TypeName != "duration" || n.Label != "5s" {
					t.Errorf("Prim() = %+v", n)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", tt.node.Kind, tt.wantKind)
			}
			if tt.check != nil {
				tt.check(t, tt.node)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if got := KindTupleStruct.String(); got != "tuple_struct" {
		t.Errorf("String() = %q, want tuple_struct", got)
	}
	if got := Kind(99).String(); got != "kind(99)" {
		t.Errorf("String() = %q, want kind(99)", got)
	}
}
