// Package export walks a value's shape and produces its relational graph:
// a flat bundle of labeled atoms and typed relation tuples, plus the
// decorators collected along the way.
//
// The walk is driven entirely by shape descriptors; no reflection is
// involved. Composites allocate a container atom and link children through
// relations named for struct fields or the structural "idx", "map_entry",
// and "value" relations. Zero-footprint values (booleans, absent options,
// units, unit variants) collapse to one shared atom per (type, label) pair
// within a session. Tracked references reuse their referent's atom, so
// shared and cyclic structures export as finite graphs.
//
// Atom IDs ("atom0", "atom1", ...) and relation order are deterministic
// for a given value, which keeps exports diffable across runs.
package export
