// Package resolver turns a set of selected parameters into the closed,
// dependency-ordered set the logger needs.
//
// Resolution runs in two phases. ResolveAll looks every known parameter up
// in the catalog, compiles its formula, and registers the parameters that
// formula (or the catalog's own `depends` list) refers to, until nothing new
// is discovered. TopologicalSort then orders the result so every parameter
// follows the parameters it refers to.
//
// Per-parameter problems are collected as diagnostics and the parameter is
// dropped; a cycle is the only failure that aborts the whole pass.
//
// Cycle detection works on parameter ids, while the table is keyed by
// `id:unit`. Two parameters that share an id but differ in unit are one node
// of the graph.
package resolver
