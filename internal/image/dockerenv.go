package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/banwar54/mthree/internal/toolrunner"
)

// ClusterDockerEnv resolves the environment variables pointing docker at the
// cluster's own daemon, so built images land in the cluster-local registry
// and pods can use them without a remote pull.
func ClusterDockerEnv(ctx context.Context, runner toolrunner.Runner, profile string) ([]string, error) {
	output, err := runner.Run(ctx, toolrunner.Command{
		Name: "minikube",
		Args: []string{"-p", profile, "docker-env", "--shell", "bash"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cluster docker-env: %w", err)
	}

	env := parseDockerEnv(output)
	if len(env) == 0 {
		return nil, fmt.Errorf("cluster docker-env produced no variables (output: %s)", strings.TrimSpace(output))
	}
	return env, nil
}

// parseDockerEnv extracts KEY=VALUE pairs from `export KEY="VALUE"` lines.
func parseDockerEnv(output string) []string {
	var env []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "export ") {
			continue
		}
		assignment := strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(assignment, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		env = append(env, key+"="+value)
	}
	return env
}
