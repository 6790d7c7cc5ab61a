package decor

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sidprasad/caraspace/pkg/errors"
	"github.com/sidprasad/caraspace/pkg/observability"
)

// BuildFunc produces the decorator set for a type. It is expected to be
// total and pure for a given type name; the registry invokes it at most
// once per name for the process lifetime.
type BuildFunc func() Set

// =============================================================================
// Registry - Process-Wide Type Decorator Cache
// =============================================================================

// Registry maps type names to their decorator sets. Registration is
// idempotent and exactly-once per type name: the first Register call for a
// name runs its build function, every later call returns the cached set
// unchanged. Entries are immutable once written and are never removed.
//
// Registry is safe for concurrent use. Racing first-time registrations for
// the same name observe exactly one build invocation and the same stored
// value (per-entry single initialization).
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	once sync.Once
	done atomic.Bool
	set  Set
}

// NewRegistry creates an empty registry. Most callers use the process-wide
// Default registry instead; separate registries exist for tests and for
// hosting isolated decorator namespaces.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register stores the decorator set for typeName, building it with build
// on first registration only. The name is checked before anything is
// stored: an empty, oversized, or control-character name is rejected with
// INVALID_ANNOTATION and the registry is left untouched. On success it
// returns the stored set, which is the build result for the first caller
// and the cached value for everyone else, including concurrent racers.
func (r *Registry) Register(typeName string, build BuildFunc) (Set, error) {
	if err := errors.ValidateTypeName(typeName); err != nil {
		return Set{}, err
	}
	e := r.entry(typeName)

	built := false
	e.once.Do(func() {
		e.set = build()
		e.done.Store(true)
		built = true
	})
	observability.Registry().OnRegister(typeName, built)

	return e.set, nil
}

// Lookup returns the registered decorator set for typeName and true, or a
// zero Set and false if the type has never completed registration.
// Lookups after registration are safe for unsynchronized concurrent reads;
// entries are immutable once written.
func (r *Registry) Lookup(typeName string) (Set, bool) {
	r.mu.Lock()
	e, ok := r.entries[typeName]
	r.mu.Unlock()

	hit := ok && e.done.Load()
	observability.Registry().OnLookup(typeName, hit)
	if !hit {
		return Set{}, false
	}
	return e.set, true
}

// Registered reports whether typeName has completed registration.
func (r *Registry) Registered(typeName string) bool {
	r.mu.Lock()
	e, ok := r.entries[typeName]
	r.mu.Unlock()
	return ok && e.done.Load()
}

// Names returns the names of all registered types in sorted order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.entries))
	for name, e := range r.entries {
		if e.done.Load() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// entry returns the entry for typeName, creating it if needed.
// The entry's once guards the build; the registry mutex only guards the map.
func (r *Registry) entry(typeName string) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[typeName]
	if !ok {
		e = &registryEntry{}
		r.entries[typeName] = e
	}
	return e
}

// =============================================================================
// Default Registry
// =============================================================================

// defaultRegistry is the process-wide registry. It is constructed once at
// process start and never torn down.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register registers a decorator set in the process-wide registry.
// See [Registry.Register].
func Register(typeName string, build BuildFunc) (Set, error) {
	return defaultRegistry.Register(typeName, build)
}

// Lookup looks a type up in the process-wide registry.
// See [Registry.Lookup].
func Lookup(typeName string) (Set, bool) {
	return defaultRegistry.Lookup(typeName)
}
