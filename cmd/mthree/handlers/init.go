package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/banwar54/mthree/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
// With force set, an existing file is overwritten without complaint.
func Init(ctx context.Context, outputPath string, force bool) error {
	if fileExists(outputPath) {
		if !force {
			return fmt.Errorf("%s already exists; pass --force to overwrite", outputPath)
		}
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg, err := result.ToConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("mthree - local Kubernetes deployment")
	fmt.Println("====================================")
	fmt.Println()
	fmt.Println("This wizard creates a deployment configuration with sensible defaults.")
	fmt.Println("The generated YAML is fully expanded and explicit.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Deployment Summary")
	fmt.Println("------------------")
	fmt.Printf("  App:       %s\n", cfg.App.Name)
	fmt.Printf("  Namespace: %s\n", cfg.App.Namespace)
	fmt.Printf("  Cluster:   %s (%s, %d CPUs / %sMB)\n",
		cfg.Cluster.Profile, cfg.Cluster.Driver, cfg.Cluster.Primary.CPUs, cfg.Cluster.Primary.Memory)
	fmt.Printf("  Image:     %s\n", cfg.Image.Ref())
	fmt.Printf("  Addons:    %s\n", strings.Join(cfg.Cluster.Addons, ", "))
	fmt.Printf("  Tunnel:    localhost:%d -> %s:%d\n",
		cfg.Tunnel.LocalPort, cfg.Tunnel.Service, cfg.Tunnel.RemotePort)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Put your manifests under %s/ (namespace, configmap, deployment, service)\n", cfg.Manifests.Dir)
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Deploy:")
	fmt.Println("     mthree deploy")
	fmt.Println()
}
