package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/depviz/depviz/pkg/pipeline"
	"github.com/depviz/depviz/pkg/render/nodelink"
	"github.com/depviz/depviz/pkg/source"
)

// Format constants for render output.
const (
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	root   string // traversal root
	format string // output format
	output string // output file path (stdout if empty)
}

// newRenderCmd creates the render command, which produces diagram
// output for a static description file.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: FormatMermaid}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a description file as a Mermaid, DOT, or SVG diagram",
		Long: `Render the dependency closure of a static description file.

Formats:
  mermaid  Mermaid diagram text (default)
  dot      Graphviz DOT source
  svg      rendered SVG image

Examples:
  depviz render repo.txt
  depviz render repo.txt --format dot
  depviz render repo.txt --format svg -o graph.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return renderFile(c, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "traversal root (defaults to the first declared package)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format (mermaid|dot|svg)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func renderFile(c *cobra.Command, path string, opts *renderOpts) error {
	if opts.format != FormatMermaid && opts.format != FormatDOT && opts.format != FormatSVG {
		return fmt.Errorf("invalid format: %q (must be one of: mermaid, dot, svg)", opts.format)
	}

	logger := loggerFromContext(c.Context())
	res, err := pipeline.NewRunner(logger).Execute(c.Context(), pipeline.Options{
		Source: source.NewStatic(path),
		Root:   opts.root,
	})
	if err != nil {
		return err
	}

	var data []byte
	switch opts.format {
	case FormatMermaid:
		data = []byte(res.Mermaid)
	case FormatDOT:
		data = []byte(nodelink.ToDOT(res.Subgraph))
	case FormatSVG:
		dot := nodelink.ToDOT(res.Subgraph)
		data, err = nodelink.RenderSVG(c.Context(), dot)
		if err != nil {
			return err
		}
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Rendered %s diagram", opts.format)
		printFile(opts.output)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method, making
// os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
