// Package report renders the plain-text adjacency report.
package report

import (
	"fmt"
	"slices"
	"strings"

	"github.com/depviz/depviz/pkg/depgraph"
)

// Render formats the subgraph as one adjacency line per node, sorted by
// identifier, followed by a node/edge count summary:
//
//	A -> [B, C]
//	B -> [C]
//	C -> []
//
//	3 nodes, 3 edges
//
// Adjacency list contents keep their declaration order; only the node
// lines are sorted.
func Render(sub *depgraph.Subgraph) string {
	nodes := sub.Nodes()
	slices.Sort(nodes)

	var b strings.Builder
	for _, node := range nodes {
		fmt.Fprintf(&b, "%s -> [%s]\n", node, strings.Join(sub.Deps(node), ", "))
	}
	fmt.Fprintf(&b, "\n%d nodes, %d edges\n", sub.Len(), sub.EdgeCount())
	return b.String()
}
