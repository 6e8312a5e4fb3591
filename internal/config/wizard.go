package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	AppName   string
	Namespace string
	Driver    string
	Profile   string
	Size      clusterSize
	Addons    []string
	LocalPort string
}

// clusterSize maps a friendly label to a primary resource profile. The
// fallback profile is always the conservative small shape.
type clusterSize string

const (
	sizeSmall  clusterSize = "small"
	sizeMedium clusterSize = "medium"
	sizeLarge  clusterSize = "large"
)

func (s clusterSize) primary() ResourceProfile {
	switch s {
	case sizeSmall:
		return ResourceProfile{CPUs: 2, Memory: "4096"}
	case sizeLarge:
		return ResourceProfile{CPUs: 6, Memory: "12288", DiskSize: "60g"}
	default:
		return ResourceProfile{CPUs: 4, Memory: "8192", DiskSize: "40g"}
	}
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	defaults := Default()
	result := &WizardResult{
		Driver:    defaults.Cluster.Driver,
		Size:      sizeMedium,
		Addons:    defaults.Cluster.Addons,
		LocalPort: strconv.Itoa(defaults.Tunnel.LocalPort),
	}

	form := huh.NewForm(
		// Application identity
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("Used for the image, deployment, and service names (DNS-safe, lowercase)").
				Placeholder(defaults.App.Name).
				Value(&result.AppName).
				Validate(validateWizardName),

			huh.NewInput().
				Title("Namespace").
				Description("Kubernetes namespace for the workload. Leave empty to derive from the app name.").
				Placeholder(defaults.App.Namespace).
				Value(&result.Namespace),
		),

		// Cluster shape
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cluster driver").
				Description("Container or VM backend for the local cluster").
				Options(
					huh.NewOption("Docker (recommended)", "docker"),
					huh.NewOption("Podman", "podman"),
					huh.NewOption("VirtualBox", "virtualbox"),
				).
				Value(&result.Driver),

			huh.NewSelect[clusterSize]().
				Title("Cluster size").
				Description("How much of the host the cluster may claim on first start").
				Options(
					huh.NewOption("Small - 2 CPUs, 4GB RAM", sizeSmall),
					huh.NewOption("Medium - 4 CPUs, 8GB RAM", sizeMedium),
					huh.NewOption("Large - 6 CPUs, 12GB RAM", sizeLarge),
				).
				Value(&result.Size),
		),

		// Addons
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Cluster addons").
				Description("Enabled best-effort; failures are warnings, not errors").
				Options(
					huh.NewOption("metrics-server (required for HPA)", "metrics-server").Selected(true),
					huh.NewOption("dashboard", "dashboard").Selected(true),
					huh.NewOption("ingress", "ingress"),
				).
				Value(&result.Addons),
		),

		// Tunnel
		huh.NewGroup(
			huh.NewInput().
				Title("Local port").
				Description("Local port for the service tunnel after deploy").
				Placeholder(result.LocalPort).
				Value(&result.LocalPort).
				Validate(validateWizardPort),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig expands the wizard choices into a full configuration with defaults
// applied and returns it validated.
func (r *WizardResult) ToConfig() (*Config, error) {
	cfg := Default()

	if r.AppName != "" {
		cfg.App.Name = r.AppName
		cfg.App.Namespace = r.AppName
		// Reset the derived fields so ApplyDefaults recomputes them.
		cfg.Image.Name = ""
		cfg.Rollout.Deployment = ""
		cfg.Tunnel.Service = ""
	}
	if r.Namespace != "" {
		cfg.App.Namespace = r.Namespace
	}
	if r.Profile != "" {
		cfg.Cluster.Profile = r.Profile
	}
	cfg.Cluster.Driver = r.Driver
	cfg.Cluster.Primary = r.Size.primary()
	cfg.Cluster.Addons = r.Addons

	if r.LocalPort != "" {
		port, err := strconv.Atoi(r.LocalPort)
		if err != nil {
			return nil, fmt.Errorf("invalid local port %q: %w", r.LocalPort, err)
		}
		cfg.Tunnel.LocalPort = port
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateWizardName(s string) error {
	if s == "" {
		return nil // falls back to the default name
	}
	return validateName("name", s)
}

func validateWizardPort(s string) error {
	if s == "" {
		return nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}
