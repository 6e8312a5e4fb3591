package phases

import (
	"github.com/banwar54/mthree/internal/addons"
	"github.com/banwar54/mthree/internal/pipeline"
)

// Addons enables optional cluster features best-effort.
type Addons struct{}

// NewAddons creates the addons phase.
func NewAddons() *Addons { return &Addons{} }

// Name implements pipeline.Phase.
func (p *Addons) Name() string { return "addons" }

// Run implements pipeline.Phase. Addons are optimizations, not
// requirements: this phase records warnings but never fails.
func (p *Addons) Run(ctx *pipeline.Context) error {
	enabler := addons.NewEnabler(ctx.Runner, ctx.Observer, ctx.Config.Cluster.Profile)

	for _, name := range ctx.Config.Cluster.Addons {
		outcome := enabler.TryEnable(ctx, name)
		if outcome.Status == addons.StatusWarned {
			ctx.Report.Warn(p.Name(), "addon %s: %s", outcome.Addon, outcome.Reason)
		}
	}
	return nil
}
