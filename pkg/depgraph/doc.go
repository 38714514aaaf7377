// Package depgraph implements the dependency graph engine.
//
// A [Graph] maps package identifiers to their direct dependencies in
// declaration order. From it the package derives a [Reverse] adjacency
// view, a reachable [Subgraph] with detected cycles via [Traverse],
// and the transitive dependents of a package via [FindDependents].
//
// All traversals use explicit worklists rather than recursion, so
// arbitrarily deep or cyclic graphs cannot exhaust the call stack.
// Graphs are built once and treated as immutable afterwards; the
// derived views hold copies and do not alias the source adjacency.
package depgraph
