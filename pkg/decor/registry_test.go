package decor

import (
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sidprasad/caraspace/pkg/errors"
)

func mustRegister(t *testing.T, reg *Registry, name string, build BuildFunc) Set {
	t.Helper()
	set, err := reg.Register(name, build)
	if err != nil {
		t.Fatalf("Register(%q) error = %v", name, err)
	}
	return set
}

func TestRegisterOnce(t *testing.T) {
	reg := NewRegistry()
	builds := 0
	build := func() Set {
		builds++
		return NewBuilder().Flag("first").Build()
	}

	first := mustRegister(t, reg, "Widget", build)
	second := mustRegister(t, reg, "Widget", func() Set {
		builds++
		return NewBuilder().Flag("second").Build()
	})
	third := mustRegister(t, reg, "Widget", build)

	if builds != 1 {
		t.Fatalf("build ran %d times, want 1", builds)
	}
	for i, got := range []Set{first, second, third} {
		if len(got.Directives) != 1 || got.Directives[0].Flag != "first" {
			t.Errorf("call %d returned %+v, want the first build's set", i, got)
		}
	}
}

func TestRegisterConcurrent(t *testing.T) {
	reg := NewRegistry()
	var builds atomic.Int32

	const goroutines = 32
	var wg sync.WaitGroup
	results := make([]Set, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set, err := reg.Register("Widget", func() Set {
				builds.Add(1)
				return NewBuilder().Flag("only").Build()
			})
			if err != nil {
				t.Errorf("Register() error = %v", err)
				return
			}
			results[i] = set
		}(i)
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("build ran %d times, want 1", got)
	}
	for i, got := range results {
		if !reflect.DeepEqual(got, results[0]) {
			t.Fatalf("goroutine %d observed a different set", i)
		}
	}
}

func TestRegisterInvalidTypeName(t *testing.T) {
	reg := NewRegistry()
	builds := 0
	for _, name := range []string{"", "bad\x00name"} {
		_, err := reg.Register(name, func() Set {
			builds++
			return Set{}
		})
		if !errors.Is(err, errors.ErrCodeInvalidAnnotation) {
			t.Errorf("Register(%q) code = %v, want INVALID_ANNOTATION", name, errors.GetCode(err))
		}
	}
	if builds != 0 {
		t.Errorf("build ran %d times for invalid names, want 0", builds)
	}
	if got := reg.Names(); len(got) != 0 {
		t.Errorf("Names() = %v, want no entries after rejected registrations", got)
	}
}

func TestLookup(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Lookup("Missing"); ok {
		t.Error("Lookup() should miss on an unregistered type")
	}
	if reg.Registered("Missing") {
		t.Error("Registered() should be false for an unregistered type")
	}

	want := NewBuilder().AtomColor("self", "#00ff00").Build()
	reg.Register("Widget", func() Set { return want })

	got, ok := reg.Lookup("Widget")
	if !ok {
		t.Fatal("Lookup() missed a registered type")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lookup() = %+v, want %+v", got, want)
	}
	if !reg.Registered("Widget") {
		t.Error("Registered() should be true after registration")
	}
}

func TestNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Zebra", func() Set { return Set{} })
	reg.Register("Apple", func() Set { return Set{} })
	reg.Register("Mango", func() Set { return Set{} })

	got := reg.Names()
	want := []string{"Apple", "Mango", "Zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestDefaultRegistry(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
	if Default() != Default() {
		t.Error("Default() should return the same registry")
	}
}
