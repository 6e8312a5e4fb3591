// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.Load

	// findConfigFile locates mthree.yaml when no path is given.
	findConfigFile = config.FindConfigFile

	// newRunner creates the external tool runner.
	newRunner = func() toolrunner.Runner {
		return toolrunner.NewExecRunner()
	}
)

// loadConfig loads and validates the deployment configuration.
// If configPath is empty, it looks for mthree.yaml starting in the current
// directory.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		path, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file found: %w\nRun 'mthree init' to create one", err)
		}
		configPath = path
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
