package depgraph

import "github.com/depviz/depviz/pkg/errors"

// RootResolution is the outcome of choosing the analysis root.
// When the requested package is not declared in the graph, resolution
// falls back to the first declared package and Fallback is set; callers
// must surface this rather than treat it as an exact match.
type RootResolution struct {
	Requested string // identifier asked for by the caller
	Resolved  string // identifier actually used as root
	Fallback  bool   // true when Resolved differs from Requested
}

// ResolveRoot selects the traversal root for the graph. If requested is
// a declared package it is used directly. Otherwise the first package
// in declaration order is chosen as a best-effort fallback, reported
// via RootResolution.Fallback. An empty graph cannot be resolved and
// yields a NO_ROOT_AVAILABLE error.
func ResolveRoot(g *Graph, requested string) (RootResolution, error) {
	if g.Len() == 0 {
		return RootResolution{}, errors.New(errors.ErrCodeNoRootAvailable, "graph has no packages to analyze")
	}
	if g.Has(requested) {
		return RootResolution{Requested: requested, Resolved: requested}, nil
	}
	first := g.keys[0]
	return RootResolution{Requested: requested, Resolved: first, Fallback: true}, nil
}
