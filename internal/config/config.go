// Package config defines the deployment configuration and its loading rules.
package config

import (
	"fmt"
	"strings"
)

// Config is the full deployment configuration, loaded from mthree.yaml.
type Config struct {
	App         AppConfig         `yaml:"app"`
	Cluster     ClusterConfig     `yaml:"cluster"`
	Image       ImageConfig       `yaml:"image"`
	Manifests   ManifestsConfig   `yaml:"manifests"`
	Rollout     RolloutConfig     `yaml:"rollout"`
	Tunnel      TunnelConfig      `yaml:"tunnel"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
}

// AppConfig identifies the deployed workload.
type AppConfig struct {
	// Name is the workload name, used for the deployment and label selectors.
	Name string `yaml:"name"`

	// Namespace is the Kubernetes namespace everything is deployed into.
	Namespace string `yaml:"namespace"`
}

// ClusterConfig describes the local minikube cluster.
type ClusterConfig struct {
	// Profile is the minikube profile name.
	Profile string `yaml:"profile"`

	// Driver is the minikube driver (docker, podman, ...).
	Driver string `yaml:"driver"`

	// Primary is the resource profile used on the first start attempt.
	Primary ResourceProfile `yaml:"primary"`

	// Fallback is the reduced profile used when the primary start fails.
	Fallback ResourceProfile `yaml:"fallback"`

	// Addons are enabled best-effort after the cluster is running.
	Addons []string `yaml:"addons"`
}

// ResourceProfile holds the resource sizing for a cluster start attempt.
type ResourceProfile struct {
	CPUs     int    `yaml:"cpus"`
	Memory   string `yaml:"memory"`
	DiskSize string `yaml:"diskSize,omitempty"`
}

// ImageConfig describes the container image build.
type ImageConfig struct {
	// Name is the image repository name. Defaults to app.name.
	Name string `yaml:"name"`

	// Tag is the image tag.
	Tag string `yaml:"tag"`

	// Context is the docker build context directory.
	Context string `yaml:"context"`
}

// Ref returns the name:tag image reference.
func (c ImageConfig) Ref() string {
	return c.Name + ":" + c.Tag
}

// ManifestsConfig locates the resource descriptor files.
type ManifestsConfig struct {
	// Dir is the directory holding the manifest files.
	Dir string `yaml:"dir"`
}

// RolloutConfig controls readiness waiting.
type RolloutConfig struct {
	// Deployment is the deployment name to watch. Defaults to app.name.
	Deployment string `yaml:"deployment"`
}

// TunnelConfig describes the local port-forward.
type TunnelConfig struct {
	// Service is the service name to forward to. Defaults to <app.name>-service.
	Service string `yaml:"service"`

	LocalPort  int `yaml:"localPort"`
	RemotePort int `yaml:"remotePort"`
}

// DiagnosticsConfig controls failure diagnostics collection.
type DiagnosticsConfig struct {
	// PodSamples is how many pods to tail logs from on rollout timeout.
	PodSamples int `yaml:"podSamples"`
}

// Default returns a configuration with every field set to its default.
func Default() *Config {
	cfg := &Config{
		App: AppConfig{
			Name:      "flask-hello",
			Namespace: "mthree-demo",
		},
		Cluster: ClusterConfig{
			Profile: "mthree",
			Driver:  "docker",
			Primary: ResourceProfile{
				CPUs:     4,
				Memory:   "8192",
				DiskSize: "40g",
			},
			Fallback: ResourceProfile{
				CPUs:   2,
				Memory: "4096",
			},
			Addons: []string{"metrics-server", "dashboard"},
		},
		Image: ImageConfig{
			Tag:     "v1",
			Context: ".",
		},
		Manifests: ManifestsConfig{
			Dir: "k8s",
		},
		Tunnel: TunnelConfig{
			LocalPort:  5000,
			RemotePort: 5000,
		},
		Diagnostics: DiagnosticsConfig{
			PodSamples: 1,
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with defaults and derives dependent names.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "flask-hello"
	}
	if c.App.Namespace == "" {
		c.App.Namespace = "mthree-demo"
	}
	if c.Cluster.Profile == "" {
		c.Cluster.Profile = "mthree"
	}
	if c.Cluster.Driver == "" {
		c.Cluster.Driver = "docker"
	}
	if c.Cluster.Primary == (ResourceProfile{}) {
		c.Cluster.Primary = ResourceProfile{CPUs: 4, Memory: "8192", DiskSize: "40g"}
	}
	if c.Cluster.Fallback == (ResourceProfile{}) {
		c.Cluster.Fallback = ResourceProfile{CPUs: 2, Memory: "4096"}
	}
	if c.Cluster.Addons == nil {
		c.Cluster.Addons = []string{"metrics-server", "dashboard"}
	}
	if c.Image.Name == "" {
		c.Image.Name = c.App.Name
	}
	if c.Image.Tag == "" {
		c.Image.Tag = "v1"
	}
	if c.Image.Context == "" {
		c.Image.Context = "."
	}
	if c.Manifests.Dir == "" {
		c.Manifests.Dir = "k8s"
	}
	if c.Rollout.Deployment == "" {
		c.Rollout.Deployment = c.App.Name
	}
	if c.Tunnel.Service == "" {
		c.Tunnel.Service = c.App.Name + "-service"
	}
	if c.Tunnel.LocalPort == 0 {
		c.Tunnel.LocalPort = 5000
	}
	if c.Tunnel.RemotePort == 0 {
		c.Tunnel.RemotePort = 5000
	}
	if c.Diagnostics.PodSamples == 0 {
		c.Diagnostics.PodSamples = 1
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validateName("app.name", c.App.Name); err != nil {
		return err
	}
	if err := validateName("app.namespace", c.App.Namespace); err != nil {
		return err
	}
	if err := validateName("cluster.profile", c.Cluster.Profile); err != nil {
		return err
	}
	if c.Cluster.Primary.CPUs < 1 {
		return fmt.Errorf("cluster.primary.cpus must be at least 1, got %d", c.Cluster.Primary.CPUs)
	}
	if c.Cluster.Fallback.CPUs < 1 {
		return fmt.Errorf("cluster.fallback.cpus must be at least 1, got %d", c.Cluster.Fallback.CPUs)
	}
	if err := validatePort("tunnel.localPort", c.Tunnel.LocalPort); err != nil {
		return err
	}
	if err := validatePort("tunnel.remotePort", c.Tunnel.RemotePort); err != nil {
		return err
	}
	if c.Diagnostics.PodSamples < 1 || c.Diagnostics.PodSamples > 10 {
		return fmt.Errorf("diagnostics.podSamples must be between 1 and 10, got %d", c.Diagnostics.PodSamples)
	}
	return nil
}

// validateName enforces DNS-safe lowercase names.
func validateName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > 63 {
		return fmt.Errorf("%s must be 63 characters or less", field)
	}
	for _, r := range value {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return fmt.Errorf("%s can only contain lowercase letters, numbers, and hyphens", field)
		}
	}
	if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") {
		return fmt.Errorf("%s cannot start or end with a hyphen", field)
	}
	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", field, port)
	}
	return nil
}
