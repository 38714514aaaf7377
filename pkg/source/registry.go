package source

import (
	"context"

	"github.com/depviz/depviz/pkg/depgraph"
	"github.com/depviz/depviz/pkg/registry"
)

// Registry builds a dependency graph from a package registry lookup.
//
// A single lookup yields the root package's direct dependencies; since
// version ranges are never resolved to concrete versions, dependencies
// enter the graph as leaves. Dependency order is the lexicographic
// name order from [registry.PackageInfo.DependencyNames], keeping
// registry-built graphs deterministic.
type Registry struct {
	client  *registry.Client
	pkg     string
	version string
	refresh bool
}

// NewRegistry creates a source that looks up pkg at the given version.
// If refresh is true the client's response cache is bypassed.
func NewRegistry(client *registry.Client, pkg, version string, refresh bool) *Registry {
	return &Registry{client: client, pkg: pkg, version: version, refresh: refresh}
}

// Name identifies the source for logging.
func (r *Registry) Name() string { return "registry" }

// Load fetches the package and returns a graph with one declared entry:
// the root package and its direct dependencies.
func (r *Registry) Load(ctx context.Context) (*depgraph.Graph, error) {
	info, err := r.client.FetchPackage(ctx, r.pkg, r.version, r.refresh)
	if err != nil {
		return nil, err
	}

	g := depgraph.New()
	g.Declare(r.pkg, info.DependencyNames())
	return g, nil
}

var _ Source = (*Registry)(nil)
