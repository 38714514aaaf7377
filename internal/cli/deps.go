package cli

import (
	"github.com/spf13/cobra"

	"github.com/depviz/depviz/pkg/depgraph"
	"github.com/depviz/depviz/pkg/source"
)

// newDepsCmd creates the deps command, which lists every package that
// transitively depends on a target.
func newDepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <file> <package>",
		Short: "List the packages that transitively depend on a package",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			g, err := source.NewStatic(args[0]).Load(c.Context())
			if err != nil {
				return err
			}

			res := depgraph.FindDependents(g.Reverse(), args[1])
			printDependents(res.Target, res.Known, res.Dependents)
			return nil
		},
	}
}
