package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/depviz/depviz/pkg/pipeline"
	"github.com/depviz/depviz/pkg/source"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	root    string // traversal root (first declared package if empty)
	diagram bool   // also print the Mermaid diagram
}

// newGraphCmd creates the graph command, which inspects a static
// description file directly without a configuration file.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <file>",
		Short: "Print the dependency closure of a static description file",
		Long: `Print the adjacency report for a static graph description file.

The file uses one line per package:

  A: B, C
  B: C
  C:

Examples:
  depviz graph repo.txt
  depviz graph repo.txt --root B
  depviz graph repo.txt --diagram`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			res, err := pipeline.NewRunner(logger).Execute(c.Context(), pipeline.Options{
				Source: source.NewStatic(args[0]),
				Root:   opts.root,
			})
			if err != nil {
				return err
			}

			if res.Root.Fallback && opts.root != "" {
				printWarning("package %q not declared, showing closure of %q", res.Root.Requested, res.Root.Resolved)
			}

			fmt.Print(res.Report)
			if opts.diagram {
				fmt.Println()
				fmt.Print(res.Mermaid)
			}
			for _, cycle := range res.Subgraph.Cycles {
				printWarning("cycle: %v", cycle)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.root, "root", "r", "", "traversal root (defaults to the first declared package)")
	cmd.Flags().BoolVarP(&opts.diagram, "diagram", "d", false, "also print the Mermaid diagram")

	return cmd
}
