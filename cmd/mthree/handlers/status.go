package handlers

import (
	"context"
	"fmt"

	"github.com/banwar54/mthree/internal/cluster"
	"github.com/banwar54/mthree/internal/k8s"
)

// Status prints a compact one-shot view of the deployment. It shares the
// doctor probes but skips the tool table and addon breakdown.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	status := gatherDoctorStatus(ctx, cfg)

	if jsonOutput {
		return printDoctorJSON(status)
	}

	fmt.Printf("App:       %s\n", status.App)
	fmt.Printf("Namespace: %s\n", status.Namespace)
	fmt.Printf("Cluster:   %s (%s)\n", cfg.Cluster.Profile, status.ClusterState)

	if status.ClusterState != string(cluster.StateRunning) {
		fmt.Println("\nRun 'mthree deploy' to start the cluster and deploy the workload.")
		return nil
	}

	rollout := status.Rollout
	if rollout == "" {
		rollout = "unknown"
	}
	fmt.Printf("Rollout:   %s/%s (%s)\n", status.Namespace, cfg.Rollout.Deployment, rollout)

	switch {
	case status.Tunnel != nil && status.Tunnel.Alive:
		fmt.Printf("Tunnel:    http://localhost:%d (pid %d)\n", status.Tunnel.LocalPort, status.Tunnel.PID)
	case status.Tunnel != nil:
		fmt.Printf("Tunnel:    stale (pid %d exited)\n", status.Tunnel.PID)
	default:
		fmt.Println("Tunnel:    not running")
	}

	if status.Rollout != string(k8s.RolloutReady) {
		fmt.Println("\nRun 'mthree doctor' for a detailed breakdown.")
	}
	return nil
}
