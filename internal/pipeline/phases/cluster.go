package phases

import (
	"github.com/banwar54/mthree/internal/cluster"
	"github.com/banwar54/mthree/internal/pipeline"
)

// Cluster ensures the local cluster is running.
type Cluster struct{}

// NewCluster creates the cluster phase.
func NewCluster() *Cluster { return &Cluster{} }

// Name implements pipeline.Phase.
func (p *Cluster) Name() string { return "cluster" }

// Run implements pipeline.Phase. Failure to start with both resource
// profiles is fatal.
func (p *Cluster) Run(ctx *pipeline.Context) error {
	mgr := cluster.NewManager(ctx.Runner, ctx.Observer, ctx.Config.Cluster, ctx.Timeouts.ClusterStart)
	_, err := mgr.EnsureRunning(ctx, ctx.Config.Cluster.Primary, ctx.Config.Cluster.Fallback)
	return err
}
