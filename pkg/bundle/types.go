package bundle

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Structural atom type names used for shapes without a user type name.
const (
	TypeSequence    = "sequence"
	TypeTuple       = "tuple"
	TypeTupleStruct = "tuple_struct"
	TypeMap         = "map"
	TypeOption      = "option"
	TypeUnit        = "unit"
	TypeUnitStruct  = "unit_struct"
	TypeNewtype     = "newtype_struct"
)

// Relation names emitted for structural shapes.
const (
	RelationIdx          = "idx"           // (container, position, element)
	RelationMapEntry     = "map_entry"     // (container, key, value)
	RelationValue        = "value"         // (newtype container, inner)
	RelationVariantValue = "variant_value" // (newtype variant, inner)
)

// Participant type names used in relation signatures. Concrete user type
// names (struct and enum names) appear alongside these.
const (
	ParticipantContainer = "container"
	ParticipantIndex     = "index"
	ParticipantAtom      = "atom"
	ParticipantMap       = "map"
)

// =============================================================================
// Bundle - Graph Serialization Format
// =============================================================================

// Bundle is the canonical serialization format for one export session:
// a flat list of labeled atoms plus the typed relations linking them.
// It is the data consumed by downstream spatial/diagram layout engines.
//
// The format is designed for round-trip fidelity: export → serialize →
// re-read produces an identical structure.
type Bundle struct {
	Atoms     []Atom     `json:"atoms" yaml:"atoms"`
	Relations []Relation `json:"relations" yaml:"relations"`
}

// Relation returns the relation with the given name and true, or a zero
// Relation and false if no relation with that name exists.
func (b Bundle) Relation(name string) (Relation, bool) {
	for _, r := range b.Relations {
		if r.Name == name {
			return r, true
		}
	}
	return Relation{}, false
}

// Atom returns the atom with the given ID and true, or a zero Atom and
// false if no atom with that ID exists.
func (b Bundle) Atom(id string) (Atom, bool) {
	for _, a := range b.Atoms {
		if a.ID == id {
			return a, true
		}
	}
	return Atom{}, false
}

// =============================================================================
// Atom - Labeled Graph Node
// =============================================================================

// Atom is a single graph node with a stable session-scoped ID, the name of
// the producing type (or a structural category such as "sequence" or "map"),
// and a display label. Labels hold the stringified value for primitives and
// the type or variant name for composites.
type Atom struct {
	ID    string `json:"id" yaml:"id"`
	Type  string `json:"type" yaml:"type"`
	Label string `json:"label" yaml:"label"`
}

// =============================================================================
// Relation - Named Typed Edge Set
// =============================================================================

// Relation is a named, typed edge set. Tuples accumulate across a session
// for emissions sharing the same name and participant-type signature;
// reusing a name with an incompatible signature is rejected by the builder.
//
// Relations may be binary (struct fields), ternary (sequence positions,
// map entries), or wider by accumulation.
type Relation struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Types  []string `json:"types" yaml:"types"`
	Tuples []Tuple  `json:"tuples" yaml:"tuples"`
}

// Arity returns the number of participants per tuple.
func (r Relation) Arity() int { return len(r.Types) }

// Tuple is one entry in a relation. Each element is either an atom ID or,
// for participants typed "index", a literal zero-based position.
type Tuple struct {
	Atoms []string `json:"atoms" yaml:"atoms"`
	Types []string `json:"types" yaml:"types"`
}
