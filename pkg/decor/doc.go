// Package decor implements the decorator subsystem: declarative layout
// constraints and visual directives that travel with exported structures.
//
// Decorators exist at two levels. Type-level sets are registered once per
// type name in a process-wide [Registry] with exactly-once build semantics;
// instance-level annotations are attached to individual values in a [Store]
// keyed by instance identity. [Combined] merges the two for an instance,
// type-level entries first, resolving instance selectors against the
// instance's shape and rejecting paths that do not exist.
//
// Sets serialize to the YAML decorator document format via
// [Set.MarshalDocument].
package decor
