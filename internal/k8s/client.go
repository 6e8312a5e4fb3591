// Package k8s provides the Kubernetes API access used for rollout
// monitoring and failure diagnostics.
package k8s

import (
	"fmt"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// Client wraps the Kubernetes API operations the pipeline needs.
type Client struct {
	clientset kubernetes.Interface
}

// NewClient creates a client from a kubeconfig file, honoring the given
// context name (the minikube profile writes its own context).
func NewClient(kubeconfigPath, contextName string) (*Client, error) {
	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	overrides := &clientcmd.ConfigOverrides{CurrentContext: contextName}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create clientset: %w", err)
	}

	return &Client{clientset: clientset}, nil
}

// NewClientForClientset wraps an existing clientset. Tests use this with
// the fake clientset.
func NewClientForClientset(clientset kubernetes.Interface) *Client {
	return &Client{clientset: clientset}
}
