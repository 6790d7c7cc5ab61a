// Package bundle defines the serialization types for exported value graphs.
//
// A Bundle is the output of one export session: an ordered list of labeled
// atoms plus the typed relations linking them. The format preserves the
// semantic distinctions between collection kinds that generic serialization
// flattens away - struct fields become relations named after the field,
// positional containers share one "idx" relation, and associative containers
// share one ternary "map_entry" relation.
//
// The package also provides JSON helpers (Marshal, Write, Read, Unmarshal)
// for handing a bundle to a downstream layout engine.
package bundle
