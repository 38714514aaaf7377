package depgraph

import "slices"

// Cycle is a dependency loop discovered during traversal: the sequence
// of identifiers from the first occurrence of the repeated node through
// the end of the path, closed by appending the repeated node once more.
type Cycle []string

// Subgraph is the portion of a Graph reachable from a root, plus the
// cycles detected while walking it. Each reachable node appears exactly
// once with its dependency list copied verbatim from the source graph;
// undeclared dependencies appear as zero-dependency leaves.
type Subgraph struct {
	Root   string
	Cycles []Cycle

	order []string
	adj   map[string][]string
}

// Nodes returns the reachable identifiers in visit order.
func (s *Subgraph) Nodes() []string { return slices.Clone(s.order) }

// Deps returns the direct dependencies of id within the subgraph.
// Unvisited ids yield nil.
func (s *Subgraph) Deps(id string) []string { return s.adj[id] }

// Len returns the number of reachable nodes.
func (s *Subgraph) Len() int { return len(s.order) }

// EdgeCount returns the number of dependency edges in the subgraph.
func (s *Subgraph) EdgeCount() int {
	n := 0
	for _, deps := range s.adj {
		n += len(deps)
	}
	return n
}

// frame is one worklist entry: a node together with the path that led
// to it from the root. Depth is informational only.
type frame struct {
	node  string
	path  []string
	depth int
}

// Traverse walks the graph from root with an explicit depth-first
// worklist and returns the reachable subgraph and all detected cycles.
//
// A dependency that already occurs in the frame's path closes a cycle;
// the cycle is recorded and traversal continues. Because nodes are
// expanded at most once, each dependency list is emitted exactly once
// even when the node is referenced from multiple paths. Termination is
// guaranteed: the visited set grows monotonically and is bounded by
// the reachable identifier set.
//
// Cycle discovery order follows worklist pop order, which expands each
// node's dependencies in reverse declaration order. That ordering is
// documented behavior, not a compatibility contract.
func Traverse(g *Graph, root string) *Subgraph {
	sub := &Subgraph{
		Root: root,
		adj:  make(map[string][]string),
	}
	visited := make(map[string]bool)
	stack := []frame{{node: root, path: []string{root}}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.node] {
			continue
		}
		visited[f.node] = true

		deps, _ := g.Deps(f.node) // undeclared nodes are leaves
		sub.order = append(sub.order, f.node)
		sub.adj[f.node] = slices.Clone(deps)

		for _, dep := range deps {
			if i := slices.Index(f.path, dep); i >= 0 {
				cycle := slices.Clone(f.path[i:])
				cycle = append(cycle, dep)
				sub.Cycles = append(sub.Cycles, cycle)
				continue
			}
			if !visited[dep] {
				path := make([]string, 0, len(f.path)+1)
				path = append(path, f.path...)
				path = append(path, dep)
				stack = append(stack, frame{node: dep, path: path, depth: f.depth + 1})
			}
		}
	}
	return sub
}
