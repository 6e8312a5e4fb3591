package handlers

import (
	"context"
	"time"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/pipeline"
	"github.com/banwar54/mthree/internal/pipeline/phases"
	"github.com/banwar54/mthree/internal/ui/tui"
)

// DeployOptions carries the deploy command flags.
type DeployOptions struct {
	ConfigPath     string
	SkipBuild      bool
	Plain          bool
	RolloutTimeout time.Duration
}

// deployPhases assembles the sequential phase list for a deploy run.
// Swapped in tests to inject fakes.
var deployPhases = func(skipBuild bool) []pipeline.Phase {
	list := []pipeline.Phase{
		phases.NewPrerequisites(skipBuild),
		phases.NewCluster(),
		phases.NewAddons(),
	}
	if !skipBuild {
		list = append(list, phases.NewImage())
	}
	return append(list,
		phases.NewManifests(),
		phases.NewRollout(),
		phases.NewTunnel(),
	)
}

// Deploy runs the full deployment pipeline: prerequisites, cluster,
// addons, image build, manifest apply, rollout wait, tunnel.
//
// Fatal step failures return an error (exit code 1). Recoverable problems
// are aggregated as warnings and the command still exits 0, printing
// access instructions for whatever succeeded.
func Deploy(ctx context.Context, opts DeployOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	phaseList := deployPhases(opts.SkipBuild)

	if !opts.Plain && isInteractiveTTY() {
		return tui.RunPipeline("mthree deploy: "+cfg.App.Name, phaseNames(phaseList),
			func(observer pipeline.Observer) (*pipeline.Report, error) {
				return runPipeline(ctx, cfg, opts, phaseList, observer)
			})
	}

	report, err := runPipeline(ctx, cfg, opts, phaseList, pipeline.NewConsoleObserver())
	if err != nil {
		return err
	}

	printDeployEpilogue(cfg, report)
	return nil
}

// runPipeline executes the phases against a fresh pipeline context.
func runPipeline(ctx context.Context, cfg *config.Config, opts DeployOptions, phaseList []pipeline.Phase, observer pipeline.Observer) (*pipeline.Report, error) {
	pctx := pipeline.NewContext(ctx, cfg, newRunner(), observer)
	if opts.RolloutTimeout > 0 {
		pctx.Timeouts.Rollout = opts.RolloutTimeout
	}

	if err := pipeline.RunPhases(pctx, phaseList); err != nil {
		return pctx.Report, err
	}
	return pctx.Report, nil
}

func phaseNames(phaseList []pipeline.Phase) []string {
	names := make([]string, 0, len(phaseList))
	for _, phase := range phaseList {
		names = append(names, phase.Name())
	}
	return names
}
