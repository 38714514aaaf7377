package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/depviz/depviz/pkg/config"
)

// newConfigCmd creates the config command, which validates a
// configuration file and displays the resolved settings.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [config-file]",
		Short: "Validate a configuration file and show the resolved settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render("Settings") + " " + StyleDim.Render(path))
			printKeyValue("name", cfg.Package.Name)
			printKeyValue("version", cfg.Package.Version)
			printKeyValue("output_file", cfg.Package.OutputFile)
			printKeyValue("url", cfg.Repository.URL)
			printKeyValue("test_mode", strconv.FormatBool(cfg.TestMode()))
			printKeyValue("reverse_deps", strconv.FormatBool(cfg.Repository.ReverseDeps.Bool()))
			printKeyValue("visualization", strconv.FormatBool(cfg.Repository.Visualization.Bool()))

			printSuccess("Configuration is valid")
			return nil
		},
	}
}
