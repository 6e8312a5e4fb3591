package handlers

import (
	"context"
	"fmt"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/manifests"
	"github.com/banwar54/mthree/internal/pipeline"
	"github.com/banwar54/mthree/internal/teardown"
	"github.com/banwar54/mthree/internal/toolrunner"
	"github.com/banwar54/mthree/internal/tunnel"
)

// teardownRunner is the teardown surface the handler needs; swapped in tests.
type teardownRunner interface {
	TeardownAll(ctx context.Context, namespace, service string, descriptors []manifests.Descriptor) *teardown.Report
}

// newTeardownManager builds the real teardown manager.
var newTeardownManager = func(runner toolrunner.Runner, logger pipeline.Logger, timeouts *config.Timeouts) (teardownRunner, error) {
	stateDir, err := tunnel.DefaultStateDir()
	if err != nil {
		return nil, err
	}

	applier := manifests.NewApplier(runner, logger, timeouts)
	supervisor := tunnel.NewSupervisor(logger, stateDir, timeouts.TunnelGrace)
	return teardown.NewManager(runner, applier, supervisor, logger, timeouts.Delete), nil
}

// Teardown removes everything a deploy run provisioned: the tunnel process,
// then the namespace (fast path) or each resource in reverse order.
// The cluster itself is left running.
//
// Teardown is best-effort end to end: step failures are printed as
// warnings and the command exits 0 as long as it could run at all.
func Teardown(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	observer := pipeline.NewConsoleObserver()
	timeouts := config.LoadTimeouts()

	manager, err := newTeardownManager(newRunner(), observer, timeouts)
	if err != nil {
		return fmt.Errorf("failed to initialize teardown: %w", err)
	}

	descriptors := manifests.DefaultDescriptors(cfg.Manifests.Dir, cfg.App.Namespace)
	report := manager.TeardownAll(ctx, cfg.App.Namespace, cfg.Tunnel.Service, descriptors)

	fmt.Printf("\nTeardown complete.\n")
	if report.FastPath {
		fmt.Printf("Namespace %q deleted; contained resources removed transitively.\n", cfg.App.Namespace)
	}
	if report.Warnings.ErrorOrNil() != nil {
		fmt.Printf("\nCompleted with warnings:\n%v\n", report.Warnings)
	}
	fmt.Printf("\nThe cluster %q is still running. Stop it with:\n", cfg.Cluster.Profile)
	fmt.Printf("  minikube stop -p %s\n", cfg.Cluster.Profile)

	return nil
}
