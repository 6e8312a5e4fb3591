package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeploy(t *testing.T) {
	cmd := Deploy()

	require.NotNil(t, cmd)
	assert.Equal(t, "deploy", cmd.Use)
	assert.Equal(t, "Deploy the workload to the local cluster", cmd.Short)
	assert.NotNil(t, cmd.RunE, "Deploy command should have RunE function")
}

func TestDeploy_Flags(t *testing.T) {
	cmd := Deploy()

	configFlag := cmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "", configFlag.DefValue)

	skipBuild := cmd.Flags().Lookup("skip-build")
	require.NotNil(t, skipBuild)
	assert.Equal(t, "false", skipBuild.DefValue)

	plain := cmd.Flags().Lookup("plain")
	require.NotNil(t, plain)
	assert.Equal(t, "false", plain.DefValue)

	timeout := cmd.Flags().Lookup("timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "0s", timeout.DefValue)
}

func TestTeardown(t *testing.T) {
	cmd := Teardown()

	require.NotNil(t, cmd)
	assert.Equal(t, "teardown", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	configFlag := cmd.Flags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
}

func TestDoctor(t *testing.T) {
	cmd := Doctor()

	require.NotNil(t, cmd)
	assert.Equal(t, "doctor", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	jsonFlag := cmd.Flags().Lookup("json")
	require.NotNil(t, jsonFlag)
	assert.Equal(t, "false", jsonFlag.DefValue)
}

func TestStatus(t *testing.T) {
	cmd := Status()

	require.NotNil(t, cmd)
	assert.Equal(t, "status", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	require.NotNil(t, cmd.Flags().Lookup("json"))
}

func TestInit(t *testing.T) {
	cmd := Init()

	require.NotNil(t, cmd)
	assert.Equal(t, "init", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	output := cmd.Flags().Lookup("output")
	require.NotNil(t, output)
	assert.Equal(t, "o", output.Shorthand)
	assert.Equal(t, "mthree.yaml", output.DefValue)

	force := cmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)
	assert.Equal(t, "false", force.DefValue)
}
