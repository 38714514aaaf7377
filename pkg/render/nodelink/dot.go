// Package nodelink renders dependency subgraphs as Graphviz node-link
// diagrams.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/depviz/depviz/pkg/depgraph"
)

// ToDOT converts a subgraph to Graphviz DOT format. Node and edge lines
// are sorted so the output is stable for a given subgraph content. The
// root node is filled to stand out from the rest.
//
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(sub *depgraph.Subgraph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	nodes := sub.Nodes()
	slices.Sort(nodes)
	for _, n := range nodes {
		if n == sub.Root {
			fmt.Fprintf(&buf, "  %q [fillcolor=plum, penwidth=2];\n", n)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	seen := make(map[string]bool)
	var edges []string
	for _, n := range nodes {
		for _, dep := range sub.Deps(n) {
			line := fmt.Sprintf("  %q -> %q;\n", n, dep)
			if !seen[line] {
				seen[line] = true
				edges = append(edges, line)
			}
		}
	}
	slices.Sort(edges)

	buf.WriteString("\n")
	for _, line := range edges {
		buf.WriteString(line)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox starts at
// the origin and explicit pixel dimensions are present. Graphviz emits
// point-based sizes that some viewers scale inconsistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
