package export

import (
	"fmt"
	"testing"

	"github.com/sidprasad/caraspace/pkg/bundle"
	"github.com/sidprasad/caraspace/pkg/errors"
)

func TestNewAtomMonotonic(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 5; i++ {
		got := b.NewAtom("string", fmt.Sprintf("v%d", i))
		want := fmt.Sprintf("atom%d", i)
		if got != want {
			t.Errorf("NewAtom() = %q, want %q", got, want)
		}
	}
	if got := len(b.Finalize().Atoms); got != 5 {
		t.Errorf("got %d atoms, want 5", got)
	}
}

func TestNewAtomNeverDeduplicates(t *testing.T) {
	b := NewBuilder()
	first := b.NewAtom("string", "same")
	second := b.NewAtom("string", "same")
	if first == second {
		t.Error("NewAtom() must allocate even for identical type/label pairs")
	}
}

func TestSingleton(t *testing.T) {
	b := NewBuilder()
	first := b.Singleton("bool", "true")
	second := b.Singleton("bool", "true")
	other := b.Singleton("bool", "false")

	if first != second {
		t.Errorf("Singleton() returned %q then %q for the same pair", first, second)
	}
	if first == other {
		t.Error("Singleton() must distinguish labels")
	}
	if got := len(b.Finalize().Atoms); got != 2 {
		t.Errorf("got %d atoms, want 2", got)
	}
}

func TestAddTupleAccumulates(t *testing.T) {
	b := NewBuilder()
	seq := b.NewAtom(bundle.TypeSequence, "seq[2]")
	e0 := b.NewAtom("int", "1")
	e1 := b.NewAtom("int", "2")

	sig := []string{bundle.ParticipantContainer, bundle.ParticipantIndex, bundle.ParticipantAtom}
	if err := b.AddTuple("idx", sig, []string{seq, "0", e0}); err != nil {
		t.Fatalf("AddTuple() error = %v", err)
	}
	if err := b.AddTuple("idx", sig, []string{seq, "1", e1}); err != nil {
		t.Fatalf("AddTuple() error = %v", err)
	}

	out := b.Finalize()
	if len(out.Relations) != 1 {
		t.Fatalf("got %d relations, want 1 (tuples accumulate by name)", len(out.Relations))
	}
	rel := out.Relations[0]
	if rel.Name != "idx" || len(rel.Tuples) != 2 {
		t.Errorf("relation = %+v, want idx with 2 tuples", rel)
	}
}

func TestAddTupleSignatureConflict(t *testing.T) {
	b := NewBuilder()
	a0 := b.NewAtom("A", "A")
	a1 := b.NewAtom("B", "B")

	if err := b.AddTuple("link", []string{"A", bundle.ParticipantAtom}, []string{a0, a1}); err != nil {
		t.Fatalf("AddTuple() error = %v", err)
	}

	tests := []struct {
		name  string
		types []string
		atoms []string
	}{
		{name: "DifferentTypes", types: []string{"B", bundle.ParticipantAtom}, atoms: []string{a1, a0}},
		{name: "DifferentArity", types: []string{"A", bundle.ParticipantIndex, bundle.ParticipantAtom}, atoms: []string{a0, "0", a1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.AddTuple("link", tt.types, tt.atoms)
			if !errors.Is(err, errors.ErrCodeRelationConflict) {
				t.Errorf("code = %v, want RELATION_SIGNATURE_CONFLICT", errors.GetCode(err))
			}
		})
	}

	// The conflicting emission must not have corrupted the relation.
	out := b.Finalize()
	if len(out.Relations) != 1 || len(out.Relations[0].Tuples) != 1 {
		t.Errorf("relations after conflict = %+v", out.Relations)
	}
}

func TestAddTupleUnknownAtom(t *testing.T) {
	b := NewBuilder()
	a0 := b.NewAtom("A", "A")

	err := b.AddTuple("link", []string{"A", bundle.ParticipantAtom}, []string{a0, "atom99"})
	if err == nil {
		t.Fatal("AddTuple() should reject unknown atom IDs")
	}

	// Positions typed "index" hold literal indices, not atom IDs.
	err = b.AddTuple("idx",
		[]string{bundle.ParticipantContainer, bundle.ParticipantIndex, bundle.ParticipantAtom},
		[]string{a0, "7", a0})
	if err != nil {
		t.Errorf("AddTuple() with index participant error = %v", err)
	}
}

func TestAddTupleArityMismatch(t *testing.T) {
	b := NewBuilder()
	a0 := b.NewAtom("A", "A")
	if err := b.AddTuple("link", []string{"A", bundle.ParticipantAtom}, []string{a0}); err == nil {
		t.Error("AddTuple() should reject mismatched types/atoms lengths")
	}
}

func TestFinalize(t *testing.T) {
	b := NewBuilder()
	a0 := b.NewAtom("A", "A")
	a1 := b.NewAtom("B", "B")
	if err := b.AddTuple("link", []string{"A", bundle.ParticipantAtom}, []string{a0, a1}); err != nil {
		t.Fatalf("AddTuple() error = %v", err)
	}

	out := b.Finalize()

	if err := b.AddTuple("link", []string{"A", bundle.ParticipantAtom}, []string{a0, a1}); err == nil {
		t.Error("AddTuple() should fail after Finalize()")
	}
	if len(out.Relations[0].Tuples) != 1 {
		t.Error("snapshot changed after Finalize()")
	}
}

func TestFinalizeRelationOrder(t *testing.T) {
	b := NewBuilder()
	a0 := b.NewAtom("A", "A")
	a1 := b.NewAtom("B", "B")

	names := []string{"gamma", "alpha", "beta"}
	for _, name := range names {
		if err := b.AddTuple(name, []string{"A", bundle.ParticipantAtom}, []string{a0, a1}); err != nil {
			t.Fatalf("AddTuple(%s) error = %v", name, err)
		}
	}

	out := b.Finalize()
	for i, rel := range out.Relations {
		if rel.Name != names[i] {
			t.Errorf("relation %d = %q, want %q (first-emission order)", i, rel.Name, names[i])
		}
		if rel.ID != fmt.Sprintf("rel%d", i) {
			t.Errorf("relation ID = %q, want rel%d", rel.ID, i)
		}
	}
}
