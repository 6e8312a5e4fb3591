package handlers

import (
	"fmt"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/pipeline"
)

// printDeployEpilogue outputs the final report: warnings banner first, then
// access instructions for whatever succeeded.
func printDeployEpilogue(cfg *config.Config, report *pipeline.Report) {
	fmt.Printf("\nDeployment complete!\n")

	if report.HasWarnings() {
		fmt.Printf("\nCompleted with %d warning(s):\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			fmt.Printf("  ! %s\n", warning)
		}
	}

	fmt.Printf("\nAccess:\n")
	if report.AccessURL != "" {
		fmt.Printf("  Service URL: %s\n", report.AccessURL)
		fmt.Printf("  Health:      %s/health\n", report.AccessURL)
	}
	if report.AltAccessHint != "" {
		fmt.Printf("  Tunnel is degraded; open the service directly with:\n")
		fmt.Printf("    %s\n", report.AltAccessHint)
	}

	fmt.Printf("\nUseful commands:\n")
	fmt.Printf("  kubectl get pods -n %s\n", cfg.App.Namespace)
	fmt.Printf("  mthree status\n")
	fmt.Printf("  mthree teardown\n")
}
