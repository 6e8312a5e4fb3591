package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResultToConfig(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		AppName:   "web-shop",
		Driver:    "docker",
		Size:      sizeSmall,
		Addons:    []string{"metrics-server"},
		LocalPort: "9090",
	}

	cfg, err := result.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, "web-shop", cfg.App.Name)
	// Namespace and derived names follow the app name when not set.
	assert.Equal(t, "web-shop", cfg.App.Namespace)
	assert.Equal(t, "web-shop", cfg.Image.Name)
	assert.Equal(t, "web-shop", cfg.Rollout.Deployment)
	assert.Equal(t, "web-shop-service", cfg.Tunnel.Service)
	assert.Equal(t, 9090, cfg.Tunnel.LocalPort)
	assert.Equal(t, ResourceProfile{CPUs: 2, Memory: "4096"}, cfg.Cluster.Primary)
	assert.Equal(t, []string{"metrics-server"}, cfg.Cluster.Addons)
}

func TestWizardResultToConfig_ExplicitNamespace(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		AppName:   "web-shop",
		Namespace: "prod-like",
		Driver:    "podman",
		Size:      sizeLarge,
	}

	cfg, err := result.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod-like", cfg.App.Namespace)
	assert.Equal(t, "podman", cfg.Cluster.Driver)
	assert.Equal(t, 6, cfg.Cluster.Primary.CPUs)
}

func TestWizardResultToConfig_EmptyUsesDefaults(t *testing.T) {
	t.Parallel()
	result := &WizardResult{Driver: "docker", Size: sizeMedium}

	cfg, err := result.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, "flask-hello", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Tunnel.LocalPort)
}

func TestWizardResultToConfig_InvalidPort(t *testing.T) {
	t.Parallel()
	result := &WizardResult{Driver: "docker", Size: sizeMedium, LocalPort: "eighty"}

	_, err := result.ToConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid local port")
}

func TestValidateWizardName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateWizardName(""))
	assert.NoError(t, validateWizardName("my-app"))
	assert.Error(t, validateWizardName("My App"))
	assert.Error(t, validateWizardName("-bad"))
}

func TestValidateWizardPort(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateWizardPort(""))
	assert.NoError(t, validateWizardPort("5000"))
	assert.Error(t, validateWizardPort("0"))
	assert.Error(t, validateWizardPort("99999"))
	assert.Error(t, validateWizardPort("abc"))
}
