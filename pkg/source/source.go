// Package source produces dependency graphs from their raw inputs.
//
// Two adapters exist: a parser for the static line-oriented graph
// description format (test repositories), and an adapter that asks a
// package registry for a package's direct dependencies. Both yield a
// [depgraph.Graph]; everything downstream is source-agnostic.
package source

import (
	"context"

	"github.com/depviz/depviz/pkg/depgraph"
)

// Source builds a dependency graph for analysis.
type Source interface {
	// Load produces the raw adjacency graph. Construction is atomic:
	// on error no partial graph is returned.
	Load(ctx context.Context) (*depgraph.Graph, error)

	// Name identifies the source for logging (e.g., "static", "registry").
	Name() string
}
