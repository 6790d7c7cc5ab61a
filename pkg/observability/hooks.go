// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about export sessions and decorator
// registry operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetExportHooks(&myExportHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from export sessions.
type ExportHooks interface {
	// OnSessionStart records the start of an export session.
	OnSessionStart(sessionID string)

	// OnAtom records one emitted atom.
	OnAtom(sessionID, atomID, typeName string)

	// OnRelationTuple records one tuple appended to a relation.
	OnRelationTuple(sessionID, relation string)

	// OnSessionComplete records the end of an export session.
	OnSessionComplete(sessionID string, atoms, relations int, duration time.Duration, err error)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from the decorator registry.
type RegistryHooks interface {
	// OnRegister records a registration attempt. built reports whether the
	// build function actually ran (first registration) or the cached set
	// was returned.
	OnRegister(typeName string, built bool)

	// OnLookup records a registry lookup and whether it hit.
	OnLookup(typeName string, hit bool)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnSessionStart(string)                                    {}
func (NoopExportHooks) OnAtom(string, string, string)                            {}
func (NoopExportHooks) OnRelationTuple(string, string)                           {}
func (NoopExportHooks) OnSessionComplete(string, int, int, time.Duration, error) {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnRegister(string, bool) {}
func (NoopRegistryHooks) OnLookup(string, bool)   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	exportHooks   ExportHooks   = NoopExportHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetExportHooks registers custom export hooks.
// This should be called once at application startup before any export runs.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any registrations.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	exportHooks = NoopExportHooks{}
	registryHooks = NoopRegistryHooks{}
}
