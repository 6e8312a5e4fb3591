// Package image builds the workload container image into the cluster's
// local docker daemon with bounded retries.
package image

import (
	"context"
	"fmt"
	"time"

	"github.com/banwar54/mthree/internal/toolrunner"
	"github.com/banwar54/mthree/internal/util/retry"
)

// BuildError reports that the image build exhausted its attempt budget.
// It is fatal: nothing downstream can proceed without an image.
type BuildError struct {
	Ref      string
	Attempts int
	Err      error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("image build for %s failed after %d attempts: %v", e.Ref, e.Attempts, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Logger receives progress output.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Builder builds container images against the cluster's docker daemon.
type Builder struct {
	runner toolrunner.Runner
	logger Logger
	env    []string
}

// NewBuilder creates a builder. env points docker at the cluster daemon,
// typically the result of ClusterDockerEnv.
func NewBuilder(runner toolrunner.Runner, logger Logger, env []string) *Builder {
	return &Builder{runner: runner, logger: logger, env: env}
}

// Build builds ref from contextDir, retrying with a fixed backoff between
// attempts. The build command is invoked at most maxAttempts times; after
// exhaustion it returns a *BuildError.
func (b *Builder) Build(ctx context.Context, ref, contextDir string, maxAttempts int, backoff time.Duration) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	attempt := 0
	err := retry.WithConstantBackoff(ctx, func() error {
		attempt++
		b.logger.Printf("Building image %s (attempt %d/%d)...", ref, attempt, maxAttempts)

		output, err := b.runner.Run(ctx, toolrunner.Command{
			Name: "docker",
			Args: []string{"build", "-t", ref, contextDir},
			Env:  b.env,
		})
		if err != nil {
			b.logger.Printf("Build attempt %d failed: %v", attempt, err)
			return fmt.Errorf("docker build failed: %w\nOutput: %s", err, output)
		}
		return nil
	}, maxAttempts, backoff)

	if err != nil {
		return &BuildError{Ref: ref, Attempts: attempt, Err: err}
	}

	b.logger.Printf("Image %s built into the cluster daemon", ref)
	return nil
}
