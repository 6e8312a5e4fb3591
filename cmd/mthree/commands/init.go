package commands

import (
	"github.com/spf13/cobra"

	"github.com/banwar54/mthree/cmd/mthree/handlers"
	"github.com/banwar54/mthree/internal/config"
)

// Init returns the command for interactively creating a deployment
// configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "mthree.yaml")
//	--force, -f: Overwrite an existing file
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring your deployment step by step.
It will ask about:

  - Application name and namespace
  - Cluster driver and size
  - Addons to enable
  - The local port for the service tunnel

The generated file can be edited by hand afterwards; every field has a
sensible default and may be omitted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Path to output file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
