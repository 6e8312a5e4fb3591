package handlers

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
)

// captureOutput captures stdout produced by f.
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// saveAndRestoreFactories saves and restores the shared factory functions.
func saveAndRestoreFactories(t *testing.T) {
	origLoad := loadConfigFile
	origFind := findConfigFile
	origRunner := newRunner

	t.Cleanup(func() {
		loadConfigFile = origLoad
		findConfigFile = origFind
		newRunner = origRunner
	})
}

// stubConfig installs a fixed config for loadConfig and returns it.
func stubConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	loadConfigFile = func(string) (*config.Config, error) { return cfg, nil }
	findConfigFile = func() (string, error) { return "mthree.yaml", nil }
	return cfg
}

// stubRunner installs a FakeRunner as the tool runner and returns it.
func stubRunner(t *testing.T) *toolrunner.FakeRunner {
	t.Helper()
	fake := toolrunner.NewFakeRunner()
	newRunner = func() toolrunner.Runner { return fake }
	return fake
}
