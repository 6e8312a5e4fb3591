package prerequisites

import (
	"errors"
	"testing"
)

func TestCheck(t *testing.T) {
	// Test with a tool that definitely exists - try multiple common tools
	// because different environments have different tools available
	possibleTools := []string{"go", "bash", "sh", "ls", "cat"}

	var foundTool string
	for _, tool := range possibleTools {
		results := Check([]Tool{{Name: tool, Required: false}})
		if len(results.Results) > 0 && results.Results[0].Found {
			foundTool = tool
			break
		}
	}

	if foundTool == "" {
		t.Skip("no common tools found in PATH, skipping test")
	}

	tools := []Tool{
		{
			Name:        foundTool,
			Required:    true,
			Description: "Test tool",
			InstallURL:  "https://example.com",
		},
	}

	results := Check(tools)

	if len(results.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results.Results))
	}

	if !results.Results[0].Found {
		t.Errorf("expected %s to be found", foundTool)
	}

	if results.Results[0].Path == "" {
		t.Errorf("expected path to be set")
	}

	if results.HasErrors() {
		t.Errorf("expected no errors")
	}
}

func TestCheckMissingTool(t *testing.T) {
	tools := []Tool{
		{
			Name:        "nonexistent-tool-xyz123",
			Required:    true,
			Description: "A tool that does not exist",
			InstallURL:  "https://example.com",
		},
	}

	results := Check(tools)

	if len(results.Missing) != 1 {
		t.Errorf("expected 1 missing tool, got %d", len(results.Missing))
	}

	if !results.HasErrors() {
		t.Errorf("expected HasErrors to be true")
	}

	err := results.Error()
	if err == nil {
		t.Fatalf("expected Error to return an error")
	}

	var missingErr *MissingDependencyError
	if !errors.As(err, &missingErr) {
		t.Fatalf("expected MissingDependencyError, got %T", err)
	}
	if len(missingErr.Missing) != 1 || missingErr.Missing[0].Name != "nonexistent-tool-xyz123" {
		t.Errorf("unexpected missing tools: %+v", missingErr.Missing)
	}
}

func TestCheckOptionalMissing(t *testing.T) {
	tools := []Tool{
		{
			Name:        "nonexistent-tool-xyz123",
			Required:    false, // optional
			Description: "An optional tool that does not exist",
			InstallURL:  "https://example.com",
		},
	}

	results := Check(tools)

	if len(results.Missing) != 1 {
		t.Errorf("expected 1 missing tool, got %d", len(results.Missing))
	}

	// Optional tools don't cause errors
	if results.HasErrors() {
		t.Errorf("expected HasErrors to be false for optional tools")
	}

	err := results.Error()
	if err != nil {
		t.Errorf("expected Error to return nil for optional tools, got %v", err)
	}
}

func TestDefaultTools(t *testing.T) {
	tools := DefaultTools()

	names := map[string]bool{}
	for _, tool := range tools {
		names[tool.Name] = true
		if !tool.Required {
			t.Errorf("default tool %s should be required", tool.Name)
		}
		if tool.InstallURL == "" {
			t.Errorf("default tool %s should carry an install URL", tool.Name)
		}
	}

	if !names["minikube"] {
		t.Error("expected minikube in DefaultTools")
	}
	if !names["kubectl"] {
		t.Error("expected kubectl in DefaultTools")
	}
}

func TestCheckForDeploy(t *testing.T) {
	withBuild := CheckForDeploy(false)
	skipBuild := CheckForDeploy(true)

	hasDocker := func(r *CheckResults) bool {
		for _, res := range r.Results {
			if res.Tool.Name == "docker" {
				return true
			}
		}
		return false
	}

	if !hasDocker(withBuild) {
		t.Error("expected docker to be checked when building")
	}
	if hasDocker(skipBuild) {
		t.Error("expected docker to be skipped with skipBuild")
	}
}

func TestMissingDependencyErrorMessage(t *testing.T) {
	err := &MissingDependencyError{Missing: []Tool{
		{Name: "minikube", InstallURL: "https://minikube.sigs.k8s.io/docs/start/"},
	}}

	want := "missing required tools: minikube (https://minikube.sigs.k8s.io/docs/start/)"
	if err.Error() != want {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
