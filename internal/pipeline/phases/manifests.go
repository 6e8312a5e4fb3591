package phases

import (
	"github.com/banwar54/mthree/internal/manifests"
	"github.com/banwar54/mthree/internal/pipeline"
)

// Manifests applies the ordered resource descriptors.
type Manifests struct {
	// Descriptors overrides the default set when non-nil.
	Descriptors []manifests.Descriptor
}

// NewManifests creates the manifest apply phase.
func NewManifests() *Manifests { return &Manifests{} }

// Name implements pipeline.Phase.
func (p *Manifests) Name() string { return "manifests" }

// Run implements pipeline.Phase. A required descriptor failing is fatal;
// optional failures become report warnings.
func (p *Manifests) Run(ctx *pipeline.Context) error {
	descriptors := p.Descriptors
	if descriptors == nil {
		descriptors = manifests.DefaultDescriptors(ctx.Config.Manifests.Dir, ctx.Config.App.Namespace)
	}

	applier := manifests.NewApplier(ctx.Runner, ctx.Observer, ctx.Timeouts)

	report, err := applier.ApplyAll(ctx, descriptors)
	if report != nil {
		for _, warned := range report.Warnings() {
			ctx.Report.Warn(p.Name(), "manifest %s: %s", warned.Descriptor.Name(), warned.Reason)
		}
	}
	return err
}
