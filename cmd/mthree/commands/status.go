package commands

import (
	"github.com/spf13/cobra"

	"github.com/banwar54/mthree/cmd/mthree/handlers"
)

// Status returns the command for a compact deployment status view.
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a compact deployment status",
		Long: `Show a compact one-shot view of the deployment.

Prints the cluster state, rollout readiness, and tunnel liveness.
Use 'mthree doctor' for the detailed breakdown including tool checks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: mthree.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")

	return cmd
}
