// Package manifests applies the ordered set of resource descriptors that
// make up a deployment.
//
// Manifest content stays opaque: only the envelope (apiVersion, kind,
// metadata) is ever read, to cross-check a descriptor's declared kind
// before apply.
package manifests

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// Category orders descriptors by dependency. Lower categories are applied
// first; teardown walks them in reverse.
type Category int

const (
	// CategoryNamespace creates the namespace everything else lives in.
	CategoryNamespace Category = iota
	// CategoryConfig holds configuration objects the workload references.
	CategoryConfig
	// CategoryWorkload holds the deployment itself.
	CategoryWorkload
	// CategoryNetwork exposes the workload inside the cluster.
	CategoryNetwork
	// CategoryAutoscaling holds optional scaling resources.
	CategoryAutoscaling
)

func (c Category) String() string {
	switch c {
	case CategoryNamespace:
		return "namespace"
	case CategoryConfig:
		return "config"
	case CategoryWorkload:
		return "workload"
	case CategoryNetwork:
		return "network"
	case CategoryAutoscaling:
		return "autoscaling"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Descriptor identifies one manifest file and how it participates in the
// pipeline. Descriptors with Required=false never abort the run on failure.
type Descriptor struct {
	Path      string
	Kind      string
	Namespace string
	Category  Category
	Required  bool
}

// Name returns a short display name for the descriptor.
func (d Descriptor) Name() string {
	return filepath.Base(d.Path)
}

// DefaultDescriptors returns the standard ordered descriptor set rooted at
// dir. The order is a total order reflecting resource dependencies:
// namespace before config, config before workload, workload before network
// and autoscaling.
func DefaultDescriptors(dir, namespace string) []Descriptor {
	return []Descriptor{
		{Path: filepath.Join(dir, "namespace.yaml"), Kind: "Namespace", Namespace: namespace, Category: CategoryNamespace, Required: true},
		{Path: filepath.Join(dir, "configmap.yaml"), Kind: "ConfigMap", Namespace: namespace, Category: CategoryConfig, Required: true},
		{Path: filepath.Join(dir, "deployment.yaml"), Kind: "Deployment", Namespace: namespace, Category: CategoryWorkload, Required: true},
		{Path: filepath.Join(dir, "service.yaml"), Kind: "Service", Namespace: namespace, Category: CategoryNetwork, Required: true},
		{Path: filepath.Join(dir, "hpa.yaml"), Kind: "HorizontalPodAutoscaler", Namespace: namespace, Category: CategoryAutoscaling, Required: false},
	}
}

// envelope is the only part of a manifest this package parses.
type envelope struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
	Metadata   struct {
		Name string `json:"name"`
	} `json:"metadata"`
}

// VerifyKind reads the manifest envelope and checks the declared kind
// matches the descriptor. The rest of the schema stays opaque.
func VerifyKind(d Descriptor) error {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %s: %w", d.Path, err)
	}

	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse manifest envelope %s: %w", d.Path, err)
	}

	if env.Kind != d.Kind {
		return fmt.Errorf("manifest %s declares kind %q, descriptor expects %q", d.Path, env.Kind, d.Kind)
	}
	return nil
}
