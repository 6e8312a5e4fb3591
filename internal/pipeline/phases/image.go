package phases

import (
	"github.com/banwar54/mthree/internal/image"
	"github.com/banwar54/mthree/internal/pipeline"
)

// Image builds the workload image into the cluster's docker daemon.
type Image struct{}

// NewImage creates the image build phase.
func NewImage() *Image { return &Image{} }

// Name implements pipeline.Phase.
func (p *Image) Name() string { return "image" }

// Run implements pipeline.Phase. Exhausting the attempt budget is fatal:
// nothing downstream can proceed without an image.
func (p *Image) Run(ctx *pipeline.Context) error {
	env, err := image.ClusterDockerEnv(ctx, ctx.Runner, ctx.Config.Cluster.Profile)
	if err != nil {
		return err
	}

	builder := image.NewBuilder(ctx.Runner, ctx.Observer, env)
	return builder.Build(ctx, ctx.Config.Image.Ref(), ctx.Config.Image.Context,
		ctx.Timeouts.BuildAttempts, ctx.Timeouts.BuildBackoff)
}
