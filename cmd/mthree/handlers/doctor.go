package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/banwar54/mthree/internal/addons"
	"github.com/banwar54/mthree/internal/cluster"
	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/k8s"
	"github.com/banwar54/mthree/internal/pipeline"
	"github.com/banwar54/mthree/internal/tunnel"
	"github.com/banwar54/mthree/internal/util/prerequisites"
)

// DoctorStatus represents the deployment diagnostic status.
type DoctorStatus struct {
	App          string          `json:"app"`
	Namespace    string          `json:"namespace"`
	Tools        []ToolStatus    `json:"tools"`
	ClusterState string          `json:"clusterState"`
	Addons       map[string]bool `json:"addons,omitempty"`
	Rollout      string          `json:"rollout,omitempty"`
	Tunnel       *TunnelStatus   `json:"tunnel,omitempty"`
}

// ToolStatus represents one prerequisite tool check.
type ToolStatus struct {
	Name       string `json:"name"`
	Found      bool   `json:"found"`
	Version    string `json:"version,omitempty"`
	InstallURL string `json:"installURL,omitempty"`
}

// TunnelStatus represents the recorded tunnel liveness.
type TunnelStatus struct {
	PID       int  `json:"pid"`
	LocalPort int  `json:"localPort"`
	Alive     bool `json:"alive"`
}

// rolloutProber is the Kubernetes surface doctor needs; swapped in tests.
type rolloutProber interface {
	WaitReady(ctx context.Context, target k8s.RolloutTarget, interval, timeout time.Duration) (k8s.RolloutState, error)
}

// Factory function variables for test injection.
var (
	checkAllPrereqs = prerequisites.CheckAll

	newStatusClient = func(contextName string) (rolloutProber, error) {
		return k8s.NewClient("", contextName)
	}

	tunnelStatus = func(namespace, service string) (*tunnel.Handle, error) {
		dir, err := tunnel.DefaultStateDir()
		if err != nil {
			return nil, err
		}
		return tunnel.NewSupervisor(pipeline.NewConsoleObserver(), dir, 0).Status(namespace, service)
	}
)

// Doctor diagnoses the local environment and, when the cluster is running,
// the live deployment state. jsonOutput selects machine-readable output.
func Doctor(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	status := gatherDoctorStatus(ctx, cfg)

	if jsonOutput {
		return printDoctorJSON(status)
	}
	printDoctorFormatted(cfg, status)
	return nil
}

// gatherDoctorStatus probes tools, cluster, rollout, and tunnel state.
// Every probe is best-effort: a missing cluster leaves the later fields
// empty rather than failing the command.
func gatherDoctorStatus(ctx context.Context, cfg *config.Config) *DoctorStatus {
	status := &DoctorStatus{
		App:       cfg.App.Name,
		Namespace: cfg.App.Namespace,
	}

	results := checkAllPrereqs()
	for _, r := range results.Results {
		status.Tools = append(status.Tools, ToolStatus{
			Name:       r.Tool.Name,
			Found:      r.Found,
			Version:    r.Version,
			InstallURL: r.Tool.InstallURL,
		})
	}

	runner := newRunner()
	logger := pipeline.NewConsoleObserver()
	timeouts := config.LoadTimeouts()

	manager := cluster.NewManager(runner, logger, cfg.Cluster, timeouts.ClusterStart)
	state := manager.Status(ctx)
	status.ClusterState = string(state)

	if state != cluster.StateRunning {
		return status
	}

	enabler := addons.NewEnabler(runner, logger, cfg.Cluster.Profile)
	status.Addons = make(map[string]bool)
	for _, name := range cfg.Cluster.Addons {
		status.Addons[name] = enabler.IsEnabled(ctx, name)
	}

	if client, err := newStatusClient(cfg.Cluster.Profile); err == nil {
		target := k8s.RolloutTarget{Deployment: cfg.Rollout.Deployment, Namespace: cfg.App.Namespace}
		// A single probe: poll once with a deadline barely above the interval.
		state, err := client.WaitReady(ctx, target, time.Second, 2*time.Second)
		if err == nil {
			status.Rollout = string(state)
		}
	}

	if handle, err := tunnelStatus(cfg.App.Namespace, cfg.Tunnel.Service); err == nil && handle != nil {
		status.Tunnel = &TunnelStatus{
			PID:       handle.PID,
			LocalPort: handle.LocalPort,
			Alive:     handle.Alive(),
		}
	}

	return status
}

// printDoctorJSON outputs status as JSON.
func printDoctorJSON(status *DoctorStatus) error {
	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printDoctorFormatted outputs status as a formatted table.
func printDoctorFormatted(cfg *config.Config, status *DoctorStatus) {
	fmt.Println()
	printHeader(status.App, status.Namespace)

	fmt.Println("  Tools")
	fmt.Println("  " + strings.Repeat("─", 35))
	for _, tool := range status.Tools {
		extra := tool.Version
		if !tool.Found {
			extra = "install: " + tool.InstallURL
		}
		printRow(tool.Name, tool.Found, extra)
	}
	fmt.Println()

	fmt.Println("  Cluster")
	fmt.Println("  " + strings.Repeat("─", 35))
	printRow(cfg.Cluster.Profile, status.ClusterState == string(cluster.StateRunning), status.ClusterState)

	if status.ClusterState != string(cluster.StateRunning) {
		fmt.Println()
		fmt.Println("  Run 'mthree deploy' to start the cluster and deploy the workload.")
		fmt.Println()
		return
	}

	if len(status.Addons) > 0 {
		fmt.Println()
		fmt.Println("  Addons")
		fmt.Println("  " + strings.Repeat("─", 35))
		for _, name := range cfg.Cluster.Addons {
			printRow(name, status.Addons[name], "")
		}
	}

	fmt.Println()
	fmt.Println("  Workload")
	fmt.Println("  " + strings.Repeat("─", 35))
	printRow("rollout", status.Rollout == string(k8s.RolloutReady), status.Rollout)

	tunnelReady := status.Tunnel != nil && status.Tunnel.Alive
	tunnelExtra := "not running"
	if status.Tunnel != nil {
		tunnelExtra = fmt.Sprintf("pid %d, localhost:%d", status.Tunnel.PID, status.Tunnel.LocalPort)
	}
	printRow("tunnel", tunnelReady, tunnelExtra)
	fmt.Println()
}

func printHeader(app, namespace string) {
	title := fmt.Sprintf("mthree deployment: %s (namespace %s)", app, namespace)
	fmt.Printf("  %s\n", title)
	fmt.Println("  " + strings.Repeat("═", len(title)))
	fmt.Println()
}

func printRow(name string, ready bool, extra string) {
	indicator := "✅" // green check
	if !ready {
		indicator = "❌" // red X
	}

	if extra != "" {
		fmt.Printf("  %s  %-20s %s\n", indicator, name, extra)
	} else {
		fmt.Printf("  %s  %s\n", indicator, name)
	}
}
