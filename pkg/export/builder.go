package export

import (
	"fmt"
	"strings"

	"github.com/sidprasad/caraspace/pkg/bundle"
	"github.com/sidprasad/caraspace/pkg/errors"
)

// =============================================================================
// Builder - Incremental Graph Construction
// =============================================================================

// Builder accumulates atoms and relation tuples for one export session and
// produces an immutable Bundle snapshot. Atom IDs are session-scoped and
// monotonic ("atom0", "atom1", ...); IDs are never reused or reordered.
//
// Builder is not safe for concurrent use. A session owns its builder.
type Builder struct {
	atoms      []bundle.Atom
	atomIDs    map[string]struct{}
	singletons map[singletonKey]string
	relations  map[string]*relationState
	relOrder   []string
	nextAtom   int
	finalized  bool
}

type singletonKey struct {
	typeName string
	label    string
}

type relationState struct {
	types  []string
	tuples []bundle.Tuple
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		atomIDs:    make(map[string]struct{}),
		singletons: make(map[singletonKey]string),
		relations:  make(map[string]*relationState),
	}
}

// NewAtom emits a fresh atom and returns its ID. Every call allocates,
// even for identical type/label pairs; use Singleton for shared atoms.
func (b *Builder) NewAtom(typeName, label string) string {
	id := fmt.Sprintf("atom%d", b.nextAtom)
	b.nextAtom++
	b.atoms = append(b.atoms, bundle.Atom{ID: id, Type: typeName, Label: label})
	b.atomIDs[id] = struct{}{}
	return id
}

// Singleton returns the session's shared atom for a (type, label) pair,
// allocating it on first use. Zero-footprint values (booleans, absent
// options, units) collapse to one atom each per session.
func (b *Builder) Singleton(typeName, label string) string {
	key := singletonKey{typeName, label}
	if id, ok := b.singletons[key]; ok {
		return id
	}
	id := b.NewAtom(typeName, label)
	b.singletons[key] = id
	return id
}

// AddTuple appends a tuple to the named relation, creating the relation on
// first use. Relations accumulate: all tuples emitted under one name share
// one relation, and the participant-type signature fixed by the first
// emission is binding for the rest of the session. Reusing a name with a
// different arity or participant types yields a RELATION_SIGNATURE_CONFLICT
// error.
//
// Each element of atoms must be an existing atom ID, except at positions
// whose participant type is "index", which hold literal positions.
func (b *Builder) AddTuple(name string, types, atoms []string) error {
	if b.finalized {
		return errors.New(errors.ErrCodeInternal, "builder already finalized")
	}
	if len(types) != len(atoms) {
		return errors.New(errors.ErrCodeInternal,
			"relation %q: %d participant types for %d atoms", name, len(types), len(atoms))
	}
	for i, a := range atoms {
		if types[i] == bundle.ParticipantIndex {
			continue
		}
		if _, ok := b.atomIDs[a]; !ok {
			return errors.New(errors.ErrCodeInternal,
				"relation %q references unknown atom %q", name, a)
		}
	}

	rel, ok := b.relations[name]
	if !ok {
		rel = &relationState{types: append([]string(nil), types...)}
		b.relations[name] = rel
		b.relOrder = append(b.relOrder, name)
	} else if !equalSignature(rel.types, types) {
		return errors.New(errors.ErrCodeRelationConflict,
			"relation %q emitted with signature (%s) but session already fixed (%s)",
			name, strings.Join(types, ", "), strings.Join(rel.types, ", "))
	}

	rel.tuples = append(rel.tuples, bundle.Tuple{
		Atoms: append([]string(nil), atoms...),
		Types: append([]string(nil), types...),
	})
	return nil
}

// Finalize snapshots the accumulated graph as a Bundle. Atoms keep emission
// order; relations keep first-emission order. The builder rejects further
// tuples after finalization.
func (b *Builder) Finalize() bundle.Bundle {
	b.finalized = true

	out := bundle.Bundle{
		Atoms:     make([]bundle.Atom, len(b.atoms)),
		Relations: make([]bundle.Relation, 0, len(b.relOrder)),
	}
	copy(out.Atoms, b.atoms)

	for i, name := range b.relOrder {
		rel := b.relations[name]
		out.Relations = append(out.Relations, bundle.Relation{
			ID:     fmt.Sprintf("rel%d", i),
			Name:   name,
			Types:  append([]string(nil), rel.types...),
			Tuples: append([]bundle.Tuple(nil), rel.tuples...),
		})
	}
	return out
}

func equalSignature(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
