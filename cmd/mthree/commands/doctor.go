package commands

import (
	"github.com/spf13/cobra"

	"github.com/banwar54/mthree/cmd/mthree/handlers"
)

// Doctor returns the command for diagnosing the local environment and the
// deployment state.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect mthree.yaml)
//	--json: Output status as JSON for scripting
func Doctor() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the environment and deployment state",
		Long: `Diagnose the local environment and the deployment state.

Checks that the required tools are installed, whether the cluster is
running, and - if it is - the addon, rollout, and tunnel state.

Examples:
  # Human-readable diagnosis
  mthree doctor

  # Machine-readable output
  mthree doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: mthree.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
