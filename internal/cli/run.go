package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/depviz/depviz/pkg/cache"
	"github.com/depviz/depviz/pkg/config"
	"github.com/depviz/depviz/pkg/pipeline"
	"github.com/depviz/depviz/pkg/registry"
	"github.com/depviz/depviz/pkg/source"
)

// defaultConfigPath is used when no config file argument is given.
const defaultConfigPath = "config.toml"

// defaultCacheTTL is how long registry responses stay cached.
const defaultCacheTTL = 24 * time.Hour

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	refresh bool // bypass the registry response cache
}

// newRunCmd creates the run command, which executes the full inspection
// pipeline from a TOML configuration file.
func newRunCmd() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Run the inspection pipeline from a configuration file",
		Long: `Run the full inspection pipeline: load the dependency graph from the
configured repository, traverse the package's dependency closure, and
print the adjacency report and Mermaid diagram.

When no config file is given, config.toml in the current directory is
used.

Examples:
  depviz run                    # uses ./config.toml
  depviz run deploy/prod.toml
  depviz run --refresh          # bypass the registry cache`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			return runPipeline(c.Context(), path, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the registry response cache")

	return cmd
}

// runPipeline loads the configuration, assembles the graph source, and
// executes the pipeline, printing results to stdout.
func runPipeline(ctx context.Context, configPath string, opts *runOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	src, cleanup, err := buildSource(cfg, opts.refresh)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Infof("Inspecting %s %s via %s source", cfg.Package.Name, cfg.Package.Version, src.Name())

	var spin *Spinner
	if !cfg.TestMode() {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s from registry", cfg.Package.Name))
		spin.Start()
	}

	prog := newProgress(logger)
	res, err := pipeline.NewRunner(logger).Execute(ctx, pipeline.Options{
		Source:        src,
		Root:          cfg.Package.Name,
		ReverseDeps:   cfg.Repository.ReverseDeps.Bool(),
		Visualization: cfg.Repository.Visualization.Bool(),
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Traversed %d packages with %d dependencies", res.Stats.NodeCount, res.Stats.EdgeCount))

	if res.Root.Fallback {
		printWarning("package %q not declared, showing closure of %q", res.Root.Requested, res.Root.Resolved)
	}

	fmt.Print(res.Report)
	fmt.Println()
	fmt.Print(res.Mermaid)

	if res.Dependents != nil {
		fmt.Println()
		printDependents(res.Dependents.Target, res.Dependents.Known, res.Dependents.Dependents)
	}

	if cfg.Repository.Visualization.Bool() {
		if err := os.WriteFile(cfg.Package.OutputFile, res.SVG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.Package.OutputFile, err)
		}
		printSuccess("Wrote visualization")
		printFile(cfg.Package.OutputFile)
	}

	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.CycleCount)
	return nil
}

// buildSource constructs the graph source selected by the config:
// a static description file in test mode, the HTTP registry otherwise.
// The returned cleanup closes the cache backend.
func buildSource(cfg *config.Config, refresh bool) (source.Source, func(), error) {
	if cfg.TestMode() {
		return source.NewStatic(cfg.Repository.URL), func() {}, nil
	}

	backend := newCacheBackend()
	client := registry.NewClient(cfg.Repository.URL, backend, defaultCacheTTL)
	src := source.NewRegistry(client, cfg.Package.Name, cfg.Package.Version, refresh)
	return src, func() { _ = backend.Close() }, nil
}

// newCacheBackend opens the file-backed response cache, degrading to a
// no-op cache when the cache directory is unavailable.
func newCacheBackend() cache.Cache {
	dir, err := cache.DefaultDir()
	if err != nil {
		return cache.NewNullCache()
	}
	backend, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return backend
}

// printDependents prints the reverse-dependents section.
func printDependents(target string, known bool, dependents []string) {
	if !known {
		printWarning("package %q is not part of the graph", target)
		return
	}
	if len(dependents) == 0 {
		printInfo("No packages depend on %s", target)
		return
	}
	printInfo("Packages depending on %s:", target)
	for _, d := range dependents {
		printDetail("%s", d)
	}
}
