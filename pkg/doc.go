// Package pkg contains the public packages of caraspace, a structural
// export engine: it turns in-memory object graphs into flat relational
// bundles (atoms and typed relations) consumable by spatial diagram and
// layout tooling, together with the decorators that describe how the
// result should look.
//
// The packages layer as follows:
//
//   - shape: value classification. Types implement shape.Descriptor to
//     declare how they decompose; no reflection anywhere.
//   - export: the session walker and graph builder producing bundles.
//   - bundle: the serialization format (atoms, relations, JSON round-trip).
//   - decor: layout constraints and visual directives, with a process-wide
//     type registry and a per-instance annotation store.
//   - errors: coded errors shared by every layer.
//   - observability: optional hooks into sessions and the registry.
package pkg
