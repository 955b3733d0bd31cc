// Package dag provides the dependency graph used to order parameters for
// emission. Nodes live in a dense arena addressed by integer index; names are
// resolved to indices once, when a node is added.
//
// The graph is built, sorted once, and discarded. It is not safe for
// concurrent use.
package dag
