// Package mermaid serializes dependency subgraphs into the Mermaid
// diagram-description language.
//
// Output is deterministic for a given subgraph content regardless of
// map enumeration order: edge lines are deduplicated and sorted
// lexicographically. The result is plain text for an external renderer;
// it is not validated against any Mermaid implementation.
package mermaid

import (
	"fmt"
	"slices"
	"strings"

	"github.com/depviz/depviz/pkg/depgraph"
)

// Header declares a top-down directed diagram.
const Header = "graph TD"

// rootStyle is the style directive template highlighting the root node.
const rootStyle = "style %s fill:#f9f,stroke:#333,stroke-width:2px"

// Emit renders the subgraph as Mermaid text. One directed edge line is
// produced per unique (package, dependency) pair, sorted, followed by a
// single style directive for the root node.
func Emit(sub *depgraph.Subgraph) string {
	seen := make(map[string]bool)
	var edges []string
	for _, node := range sub.Nodes() {
		for _, dep := range sub.Deps(node) {
			line := fmt.Sprintf("    %s --> %s", node, dep)
			if !seen[line] {
				seen[line] = true
				edges = append(edges, line)
			}
		}
	}
	slices.Sort(edges)

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, line := range edges {
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "    "+rootStyle+"\n", sub.Root)
	return b.String()
}
