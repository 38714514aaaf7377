package depgraph

// DependentsResult holds the transitive dependents of a target package.
// Known distinguishes a target absent from the graph (empty result,
// Known=false) from one that truly has no dependents (empty result,
// Known=true). The target itself appears in Dependents only when it is
// reachable from itself through a cycle.
type DependentsResult struct {
	Target     string
	Known      bool
	Dependents []string
}

// FindDependents computes the transitive closure of "depends on target"
// over the reverse adjacency view using an explicit depth-first
// worklist. The result order is discovery order. An unknown target is
// not an error; it yields an empty list with Known=false.
func FindDependents(r *Reverse, target string) DependentsResult {
	res := DependentsResult{Target: target, Known: r.Known(target)}
	if !res.Known {
		return res
	}

	visited := make(map[string]bool)
	stack := []string{target}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, dep := range r.Dependents(node) {
			if !visited[dep] {
				visited[dep] = true
				res.Dependents = append(res.Dependents, dep)
				stack = append(stack, dep)
			}
		}
	}
	return res
}
