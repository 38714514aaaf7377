package depgraph

import (
	"regexp"
	"slices"
)

// identRE is the lexical rule for package identifiers in the static
// description format: uppercase Latin letters only, non-empty.
var identRE = regexp.MustCompile(`^[A-Z]+$`)

// ValidIdentifier reports whether s satisfies the package identifier
// rule. Identifiers are case-sensitive and compared by exact string
// equality; no normalization is applied.
func ValidIdentifier(s string) bool {
	return identRE.MatchString(s)
}

// Graph is a directed dependency graph: each declared package maps to
// its direct dependencies in declaration order. A dependency need not
// be declared itself; undeclared identifiers are leaves with zero
// dependencies.
//
// The zero value is not usable - use New. Graph is not safe for
// concurrent mutation; once built it is safe for concurrent reads.
type Graph struct {
	keys []string            // declared packages, insertion order
	adj  map[string][]string // package -> direct dependencies
}

// New creates an empty dependency graph.
func New() *Graph {
	return &Graph{adj: make(map[string][]string)}
}

// Declare records pkg with its direct dependencies. Declaring the same
// package again overwrites the earlier dependency list (last-write-wins)
// while keeping the package's original position in declaration order.
// The deps slice is copied.
func (g *Graph) Declare(pkg string, deps []string) {
	if _, exists := g.adj[pkg]; !exists {
		g.keys = append(g.keys, pkg)
	}
	g.adj[pkg] = slices.Clone(deps)
}

// Packages returns the declared package identifiers in declaration order.
func (g *Graph) Packages() []string { return slices.Clone(g.keys) }

// Deps returns the direct dependencies of pkg and whether pkg is
// declared. Undeclared packages yield (nil, false); treat them as
// zero-dependency leaves. The returned slice must not be modified.
func (g *Graph) Deps(pkg string) ([]string, bool) {
	deps, ok := g.adj[pkg]
	return deps, ok
}

// Has reports whether pkg is declared in the graph.
func (g *Graph) Has(pkg string) bool {
	_, ok := g.adj[pkg]
	return ok
}

// Len returns the number of declared packages.
func (g *Graph) Len() int { return len(g.keys) }

// EdgeCount returns the total number of declared dependency edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.adj {
		n += len(deps)
	}
	return n
}

// Nodes returns every identifier appearing in the graph - declared
// packages and leaf-only dependencies - in order of first appearance.
func (g *Graph) Nodes() []string {
	seen := make(map[string]bool, len(g.keys))
	var nodes []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			nodes = append(nodes, id)
		}
	}
	for _, pkg := range g.keys {
		add(pkg)
		for _, dep := range g.adj[pkg] {
			add(dep)
		}
	}
	return nodes
}

// Reverse derives the reverse dependency view: for every identifier in
// the graph, the ordered set of packages that directly declare it as a
// dependency. The view is a snapshot; it must be rebuilt if the graph
// changes.
func (g *Graph) Reverse() *Reverse {
	r := &Reverse{dependents: make(map[string][]string)}
	ensure := func(id string) {
		if _, ok := r.dependents[id]; !ok {
			r.dependents[id] = nil
			r.order = append(r.order, id)
		}
	}
	for _, pkg := range g.keys {
		ensure(pkg)
		for _, dep := range g.adj[pkg] {
			ensure(dep)
			if !slices.Contains(r.dependents[dep], pkg) {
				r.dependents[dep] = append(r.dependents[dep], pkg)
			}
		}
	}
	return r
}

// Reverse maps each identifier to the packages that directly depend on
// it. Every identifier appearing anywhere in the source graph has an
// entry, defaulting to an empty sequence.
type Reverse struct {
	order      []string
	dependents map[string][]string
}

// Dependents returns the packages that directly declare id as a
// dependency, in declaration order. Returns nil for unknown ids.
func (r *Reverse) Dependents(id string) []string { return r.dependents[id] }

// Known reports whether id appears anywhere in the source graph.
func (r *Reverse) Known(id string) bool {
	_, ok := r.dependents[id]
	return ok
}

// Nodes returns every known identifier in first-appearance order.
func (r *Reverse) Nodes() []string { return slices.Clone(r.order) }
