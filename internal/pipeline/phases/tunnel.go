package phases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banwar54/mthree/internal/pipeline"
	"github.com/banwar54/mthree/internal/tunnel"
)

// TunnelSupervisor is the supervision surface the tunnel phase needs.
type TunnelSupervisor interface {
	Ensure(ctx context.Context, namespace, service string, localPort, remotePort int) (*tunnel.Handle, error)
}

// Tunnel starts the exclusive local port-forward to the deployed service.
type Tunnel struct {
	// newSupervisor is swapped in tests.
	newSupervisor func(logger pipeline.Logger, grace time.Duration) (TunnelSupervisor, error)
}

// NewTunnel creates the tunnel phase.
func NewTunnel() *Tunnel {
	return &Tunnel{
		newSupervisor: func(logger pipeline.Logger, grace time.Duration) (TunnelSupervisor, error) {
			dir, err := tunnel.DefaultStateDir()
			if err != nil {
				return nil, err
			}
			return tunnel.NewSupervisor(logger, dir, grace), nil
		},
	}
}

// Name implements pipeline.Phase.
func (p *Tunnel) Name() string { return "tunnel" }

// Run implements pipeline.Phase. A tunnel that fails to stay alive past the
// grace period is a warning, not a failure: the service remains reachable
// through `minikube service`.
func (p *Tunnel) Run(ctx *pipeline.Context) error {
	supervisor, err := p.newSupervisor(ctx.Observer, ctx.Timeouts.TunnelGrace)
	if err != nil {
		return fmt.Errorf("failed to create tunnel supervisor: %w", err)
	}

	cfg := ctx.Config.Tunnel
	_, err = supervisor.Ensure(ctx, ctx.Config.App.Namespace, cfg.Service, cfg.LocalPort, cfg.RemotePort)

	if err == nil {
		ctx.Report.AccessURL = fmt.Sprintf("http://localhost:%d", cfg.LocalPort)
		return nil
	}

	// Any tunnel failure is a warning: the operator can still reach the
	// service through `minikube service`.
	var graceErr *tunnel.GraceError
	if errors.As(err, &graceErr) {
		ctx.Report.Warn(p.Name(), "%v", graceErr)
	} else {
		ctx.Report.Warn(p.Name(), "tunnel failed to start: %v", err)
	}
	ctx.Report.AltAccessHint = fmt.Sprintf("minikube service %s -n %s -p %s",
		cfg.Service, ctx.Config.App.Namespace, ctx.Config.Cluster.Profile)

	return nil
}
