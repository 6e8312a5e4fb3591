package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/banwar54/mthree/cmd/mthree/handlers"
)

// Deploy returns the command for deploying the workload to the local cluster.
//
// This command runs the full pipeline: prerequisite checks, cluster start,
// addon enablement, image build, manifest application, rollout wait, and
// the local port-forward tunnel.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect mthree.yaml)
//	--skip-build: Reuse the image already present in the cluster
//	--plain: Disable the interactive progress view
//	--timeout: Override the rollout readiness timeout
func Deploy() *cobra.Command {
	var (
		configPath     string
		skipBuild      bool
		plain          bool
		rolloutTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the workload to the local cluster",
		Long: `Deploy the workload to the local Kubernetes cluster.

This command starts the minikube cluster if needed, builds the container
image inside the cluster's Docker daemon, applies the manifests in order,
waits for the rollout, and opens a local tunnel to the service.

If no config file is specified, it looks for mthree.yaml in the current
directory and its parents. Use 'mthree init' to create a configuration file.

Examples:
  # Deploy using mthree.yaml in current directory
  mthree deploy

  # Deploy using a specific config file
  mthree deploy -c staging.yaml

  # Redeploy without rebuilding the image
  mthree deploy --skip-build

  # Plain output for CI logs
  mthree deploy --plain`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), handlers.DeployOptions{
				ConfigPath:     configPath,
				SkipBuild:      skipBuild,
				Plain:          plain,
				RolloutTimeout: rolloutTimeout,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: mthree.yaml)")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip the image build and reuse the existing image")
	cmd.Flags().BoolVar(&plain, "plain", false, "Disable the interactive progress view")
	cmd.Flags().DurationVar(&rolloutTimeout, "timeout", 0, "Rollout readiness timeout (default 3m)")

	return cmd
}
