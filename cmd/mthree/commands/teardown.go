package commands

import (
	"github.com/spf13/cobra"

	"github.com/banwar54/mthree/cmd/mthree/handlers"
)

// Teardown returns the command for removing the deployed workload.
//
// Teardown is best-effort: the tunnel is stopped first, then the namespace
// is deleted; if the namespace delete fails, each manifest is deleted
// individually in reverse apply order. The cluster itself is left running.
func Teardown() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Remove the deployed workload",
		Long: `Remove the deployed workload from the local cluster.

Stops the local tunnel and deletes the namespace with everything in it.
The cluster keeps running so the next deploy is fast; stop it separately
with 'minikube stop' if you want the resources back.

Examples:
  # Tear down using mthree.yaml in current directory
  mthree teardown

  # Tear down a specific deployment
  mthree teardown -c staging.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: mthree.yaml)")

	return cmd
}
