// Package cluster manages the lifecycle of the local minikube cluster.
package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
)

// State describes the observed cluster state.
type State string

const (
	// StateAbsent means no cluster exists for the profile.
	StateAbsent State = "absent"
	// StateRunning means the cluster host and kubelet are up.
	StateRunning State = "running"
	// StateDegraded means the cluster exists but is not fully healthy.
	StateDegraded State = "degraded"
)

// StartError reports that the cluster failed to start with both the
// primary and the fallback resource profile. It is fatal: nothing
// downstream can run without a cluster.
type StartError struct {
	Profile     string
	PrimaryErr  error
	FallbackErr error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("cluster %q failed to start: primary attempt: %v; fallback attempt: %v",
		e.Profile, e.PrimaryErr, e.FallbackErr)
}

func (e *StartError) Unwrap() error {
	return e.FallbackErr
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Manager drives minikube to ensure a running local cluster.
type Manager struct {
	runner       toolrunner.Runner
	logger       Logger
	profile      string
	driver       string
	startTimeout time.Duration
}

// NewManager creates a cluster manager for the given minikube profile.
func NewManager(runner toolrunner.Runner, logger Logger, cfg config.ClusterConfig, startTimeout time.Duration) *Manager {
	return &Manager{
		runner:       runner,
		logger:       logger,
		profile:      cfg.Profile,
		driver:       cfg.Driver,
		startTimeout: startTimeout,
	}
}

// minikubeStatus mirrors the fields of `minikube status -o json` we care about.
type minikubeStatus struct {
	Host       string `json:"Host"`
	Kubelet    string `json:"Kubelet"`
	APIServer  string `json:"APIServer"`
	Kubeconfig string `json:"Kubeconfig"`
}

// Status queries the current cluster state. A missing profile maps to
// StateAbsent; status query errors are treated the same way because
// minikube exits non-zero for stopped and nonexistent profiles alike.
func (m *Manager) Status(ctx context.Context) State {
	output, err := m.runner.Run(ctx, toolrunner.Command{
		Name: "minikube",
		Args: []string{"status", "-p", m.profile, "-o", "json"},
	})
	if err != nil {
		return StateAbsent
	}

	var status minikubeStatus
	if err := json.Unmarshal([]byte(output), &status); err != nil {
		return StateAbsent
	}

	if status.Host == "Running" && status.Kubelet == "Running" {
		return StateRunning
	}
	if status.Host == "" {
		return StateAbsent
	}
	return StateDegraded
}

// EnsureRunning makes sure the cluster is up. An already-running cluster is
// a no-op. Otherwise it starts with the primary profile and retries exactly
// once with the fallback profile before giving up with a StartError.
func (m *Manager) EnsureRunning(ctx context.Context, primary, fallback config.ResourceProfile) (State, error) {
	if state := m.Status(ctx); state == StateRunning {
		m.logger.Printf("Cluster %q is already running", m.profile)
		return StateRunning, nil
	}

	m.logger.Printf("Starting cluster %q (cpus=%d memory=%s)...", m.profile, primary.CPUs, primary.Memory)
	primaryErr := m.start(ctx, primary)
	if primaryErr == nil {
		return StateRunning, nil
	}

	m.logger.Printf("Primary start failed (%v), retrying with reduced resources (cpus=%d memory=%s)...",
		primaryErr, fallback.CPUs, fallback.Memory)
	fallbackErr := m.start(ctx, fallback)
	if fallbackErr == nil {
		return StateRunning, nil
	}

	return StateAbsent, &StartError{
		Profile:     m.profile,
		PrimaryErr:  primaryErr,
		FallbackErr: fallbackErr,
	}
}

// start runs a single minikube start attempt with the given resources.
func (m *Manager) start(ctx context.Context, profile config.ResourceProfile) error {
	ctx, cancel := context.WithTimeout(ctx, m.startTimeout)
	defer cancel()

	args := []string{
		"start",
		"-p", m.profile,
		"--driver", m.driver,
		"--cpus", strconv.Itoa(profile.CPUs),
		"--memory", profile.Memory,
	}
	if profile.DiskSize != "" {
		args = append(args, "--disk-size", profile.DiskSize)
	}

	output, err := m.runner.Run(ctx, toolrunner.Command{Name: "minikube", Args: args})
	if err != nil {
		return fmt.Errorf("minikube start failed: %w\nOutput: %s", err, output)
	}
	return nil
}

// Profile returns the minikube profile name the manager operates on.
func (m *Manager) Profile() string {
	return m.profile
}
