// Package phases implements the sequential deployment phases.
package phases

import (
	"fmt"

	"github.com/banwar54/mthree/internal/pipeline"
	"github.com/banwar54/mthree/internal/util/prerequisites"
)

// Prerequisites verifies required external tools before anything else runs.
type Prerequisites struct {
	// SkipBuild drops the image build tools from the required set.
	SkipBuild bool

	// check is swapped in tests.
	check func(skipBuild bool) *prerequisites.CheckResults
}

// NewPrerequisites creates the prerequisites phase.
func NewPrerequisites(skipBuild bool) *Prerequisites {
	return &Prerequisites{SkipBuild: skipBuild, check: prerequisites.CheckForDeploy}
}

// Name implements pipeline.Phase.
func (p *Prerequisites) Name() string { return "prerequisites" }

// Run implements pipeline.Phase. A missing required tool is fatal and not
// retried: the operator must install the dependency and re-run.
func (p *Prerequisites) Run(ctx *pipeline.Context) error {
	results := p.check(p.SkipBuild)

	for _, r := range results.Results {
		if r.Found {
			version := r.Version
			if version == "" {
				version = "unknown version"
			}
			ctx.Observer.Printf("  Found %s (%s)", r.Tool.Name, version)
		}
	}

	if err := results.Error(); err != nil {
		return fmt.Errorf("prerequisites check failed: %w", err)
	}
	return nil
}
