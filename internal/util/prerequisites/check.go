// Package prerequisites provides utilities for checking required client tools.
// The deploy pipeline refuses to start while a required tool is missing.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// DefaultTools returns the tools every command needs.
// minikube drives the cluster, kubectl applies manifests and forwards ports.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "minikube",
			Required:    true,
			Description: "Required for starting and managing the local cluster",
			InstallURL:  "https://minikube.sigs.k8s.io/docs/start/",
		},
		{
			Name:        "kubectl",
			Required:    true,
			Description: "Required for applying Kubernetes manifests and port forwarding",
			InstallURL:  "https://kubernetes.io/docs/tasks/tools/",
		},
	}
}

// ImageBuildTools returns additional tools needed for image building.
func ImageBuildTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Required for building the application image against the cluster daemon",
			InstallURL:  "https://docs.docker.com/get-docker/",
		},
	}
}

// MissingDependencyError reports required tools that are not installed.
// It is fatal: callers stop the pipeline before any cluster mutation.
type MissingDependencyError struct {
	Missing []Tool
}

func (e *MissingDependencyError) Error() string {
	parts := make([]string, 0, len(e.Missing))
	for _, tool := range e.Missing {
		parts = append(parts, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
	}
	return fmt.Sprintf("missing required tools: %s", strings.Join(parts, ", "))
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns a *MissingDependencyError if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []Tool
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingDependencyError{Missing: missing}
}

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			// Try to get version (best effort)
			result.Version = getToolVersion(tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default required tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckForDeploy checks the tools a deploy run needs. Image build tools are
// skipped when the build step is skipped.
func CheckForDeploy(skipBuild bool) *CheckResults {
	tools := DefaultTools()
	if !skipBuild {
		tools = append(tools, ImageBuildTools()...)
	}
	return Check(tools)
}

// CheckAll checks every tool the binary can make use of.
func CheckAll() *CheckResults {
	defaults := DefaultTools()
	imageBuild := ImageBuildTools()
	all := make([]Tool, 0, len(defaults)+len(imageBuild))
	all = append(all, defaults...)
	all = append(all, imageBuild...)
	return Check(all)
}

// getToolVersion attempts to get the version of a tool.
// Returns empty string if version cannot be determined.
func getToolVersion(name string) string {
	// Common version flags to try
	versionFlags := []string{"--version", "version", "-v"}

	for _, flag := range versionFlags {
		// #nosec G204 - name comes from trusted Tool definitions, not user input
		cmd := exec.Command(name, flag)
		output, err := cmd.Output()
		if err == nil {
			// Return first line of output, trimmed
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				return strings.TrimSpace(lines[0])
			}
		}
	}

	return ""
}
