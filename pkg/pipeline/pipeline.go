// Package pipeline orchestrates the depviz inspection run.
//
// A run moves through four stages:
//
//  1. Load: obtain the dependency graph from a static description file
//     or from the package registry
//  2. Resolve: pick the traversal root, falling back to the first
//     declared package when the requested one is absent
//  3. Traverse: walk the dependency closure, collecting cycles, and
//     optionally compute reverse dependents
//  4. Render: produce the adjacency report, the Mermaid diagram, and
//     optionally a Graphviz SVG artifact
//
// Each stage can be reached independently, but the usual entry point is
// a Runner executing the whole thing:
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:      src,
//	    Root:        "REQUESTS",
//	    ReverseDeps: true,
//	})
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/depviz/depviz/pkg/depgraph"
	"github.com/depviz/depviz/pkg/errors"
	"github.com/depviz/depviz/pkg/render/mermaid"
	"github.com/depviz/depviz/pkg/render/nodelink"
	"github.com/depviz/depviz/pkg/render/report"
	"github.com/depviz/depviz/pkg/source"
)

// Options configures a pipeline run.
type Options struct {
	// Source provides the dependency graph.
	Source source.Source

	// Root is the requested traversal root. When it is not declared in
	// the graph, the run falls back to the first declared package and
	// records that in the result.
	Root string

	// ReverseDeps enables the reverse-dependents stage for Root.
	ReverseDeps bool

	// Visualization enables DOT/SVG artifact generation.
	Visualization bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the loaded dependency graph.
	Graph *depgraph.Graph

	// Root records how the traversal root was resolved.
	Root depgraph.RootResolution

	// Subgraph is the dependency closure reachable from the root.
	Subgraph *depgraph.Subgraph

	// Dependents holds the reverse-dependents result when Options.ReverseDeps
	// was set, nil otherwise.
	Dependents *depgraph.DependentsResult

	// Report is the plain-text adjacency report.
	Report string

	// Mermaid is the diagram description.
	Mermaid string

	// DOT holds the Graphviz source when Options.Visualization was set.
	DOT string

	// SVG holds the rendered artifact when Options.Visualization was set.
	SVG []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	CycleCount int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// Runner executes pipeline runs with a shared logger.
type Runner struct {
	logger *log.Logger
}

// NewRunner creates a runner. A nil logger discards all output.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{logger: logger}
}

// Execute runs the full pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Source == nil {
		return nil, errors.New(errors.ErrCodeInternal, "pipeline: no source configured")
	}

	loadStart := time.Now()
	r.logger.Debugf("loading graph from %s source", opts.Source.Name())
	g, err := opts.Source.Load(ctx)
	if err != nil {
		return nil, err
	}
	loadTime := time.Since(loadStart)

	res := &Result{Graph: g}

	res.Root, err = depgraph.ResolveRoot(g, opts.Root)
	if err != nil {
		return nil, err
	}
	if res.Root.Fallback {
		r.logger.Warnf("package %q not declared, using %q as root", res.Root.Requested, res.Root.Resolved)
	}

	res.Subgraph = depgraph.Traverse(g, res.Root.Resolved)
	for _, c := range res.Subgraph.Cycles {
		r.logger.Debugf("cycle detected: %v", c)
	}

	if opts.ReverseDeps {
		dep := depgraph.FindDependents(g.Reverse(), opts.Root)
		res.Dependents = &dep
	}

	renderStart := time.Now()
	res.Report = report.Render(res.Subgraph)
	res.Mermaid = mermaid.Emit(res.Subgraph)
	if opts.Visualization {
		res.DOT = nodelink.ToDOT(res.Subgraph)
		res.SVG, err = nodelink.RenderSVG(ctx, res.DOT)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render visualization")
		}
	}

	res.Stats = Stats{
		NodeCount:  res.Subgraph.Len(),
		EdgeCount:  res.Subgraph.EdgeCount(),
		CycleCount: len(res.Subgraph.Cycles),
		LoadTime:   loadTime,
		RenderTime: time.Since(renderStart),
	}
	return res, nil
}
