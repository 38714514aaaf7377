package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/depviz/depviz/pkg/depgraph"
	"github.com/depviz/depviz/pkg/errors"
)

// Static reads a dependency graph from a line-oriented description
// file. One statement per line:
//
//	<PACKAGE>: <DEP1>, <DEP2>, ...
//
// Identifiers are uppercase Latin letters. Blank lines and lines whose
// first non-whitespace character is '#' are ignored. Declaring the
// same package twice overwrites the earlier dependency list.
type Static struct {
	path string
}

// NewStatic creates a source reading the description file at path.
func NewStatic(path string) *Static {
	return &Static{path: path}
}

// Name identifies the source for logging.
func (s *Static) Name() string { return "static" }

// Load parses the description file. Missing files map to
// GRAPH_NOT_FOUND, other read failures to GRAPH_IO_ERROR, and any
// line-level violation to a line-numbered format error.
func (s *Static) Load(ctx context.Context) (*depgraph.Graph, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeGraphNotFound, "graph description %q not found", s.path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphIO, err, "open %q", s.path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a graph description from r. Parsing is atomic: the first
// violation fails the whole operation and no partial graph is returned.
func Parse(r io.Reader) (*depgraph.Graph, error) {
	g := depgraph.New()
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pkg, deps, err := parseLine(lineNo, raw, line)
		if err != nil {
			return nil, err
		}
		g.Declare(pkg, deps)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeGraphIO, err, "read description")
	}
	return g, nil
}

// ParseString parses a graph description held in memory.
func ParseString(desc string) (*depgraph.Graph, error) {
	return Parse(strings.NewReader(desc))
}

func parseLine(lineNo int, raw, line string) (string, []string, error) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return "", nil, errors.NewLine(errors.ErrCodeMalformedLine, lineNo, raw,
			"missing colon in %q", raw)
	}

	pkg := strings.TrimSpace(before)
	if !depgraph.ValidIdentifier(pkg) {
		return "", nil, invalidIdentifier(lineNo, raw, pkg)
	}

	var deps []string
	for _, tok := range strings.Split(after, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			// Trailing or doubled commas produce empty tokens; skip them.
			continue
		}
		if !depgraph.ValidIdentifier(tok) {
			return "", nil, invalidIdentifier(lineNo, raw, tok)
		}
		deps = append(deps, tok)
	}
	return pkg, deps, nil
}

func invalidIdentifier(lineNo int, raw, token string) error {
	return errors.NewLine(errors.ErrCodeInvalidIdentifier, lineNo, raw,
		"invalid identifier %q (must match %s)", token, "^[A-Z]+$")
}

var _ Source = (*Static)(nil)

// FormatGraph renders a graph back into the static description format,
// one declaration per line in declaration order.
func FormatGraph(g *depgraph.Graph) string {
	var b strings.Builder
	for _, pkg := range g.Packages() {
		deps, _ := g.Deps(pkg)
		if len(deps) == 0 {
			fmt.Fprintf(&b, "%s:\n", pkg)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", pkg, strings.Join(deps, ", "))
	}
	return b.String()
}
