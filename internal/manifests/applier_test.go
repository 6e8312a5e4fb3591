package manifests

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banwar54/mthree/internal/config"
	"github.com/banwar54/mthree/internal/toolrunner"
)

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// testTimeouts keeps retries fast while still bounding every invocation.
func testTimeouts() *config.Timeouts {
	return &config.Timeouts{
		ApplyAttempts:   3,
		ApplyRetryDelay: time.Millisecond,
		Apply:           time.Minute,
		Delete:          time.Minute,
	}
}

// writeDescriptorSet writes a valid manifest file per descriptor so
// VerifyKind passes and applies reach kubectl.
func writeDescriptorSet(t *testing.T) []Descriptor {
	t.Helper()
	dir := t.TempDir()
	descriptors := DefaultDescriptors(dir, "mthree-demo")
	for _, d := range descriptors {
		content := fmt.Sprintf("apiVersion: v1\nkind: %s\nmetadata:\n  name: test\n", d.Kind)
		writeManifest(t, dir, filepath.Base(d.Path), content)
	}
	return descriptors
}

func TestApplyAll_AppliesInOrder(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)
	fake := toolrunner.NewFakeRunner()

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	report, err := applier.ApplyAll(context.Background(), descriptors)

	require.NoError(t, err)
	require.Len(t, report.Results, 5)
	for _, res := range report.Results {
		assert.Equal(t, StatusApplied, res.Status)
	}

	calls := fake.Calls()
	require.Len(t, calls, 5)
	// Strict apply order: namespace, config, workload, network, autoscaling.
	for i, d := range descriptors {
		assert.Equal(t, "kubectl apply -f "+d.Path, calls[i])
	}
}

func TestApplyAll_RequiredFailureAborts(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)
	fake := toolrunner.NewFakeRunner()
	// The deployment apply fails with a non-retryable validation error.
	fake.Respond("kubectl apply -f "+descriptors[2].Path, "error validating data", errors.New("exit status 1"))

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	report, err := applier.ApplyAll(context.Background(), descriptors)

	require.Error(t, err)
	var applyErr *ApplyError
	require.ErrorAs(t, err, &applyErr)
	assert.Equal(t, "Deployment", applyErr.Descriptor.Kind)

	require.Len(t, report.Results, 5)
	assert.Equal(t, StatusApplied, report.Results[0].Status)
	assert.Equal(t, StatusApplied, report.Results[1].Status)
	assert.Equal(t, StatusFailed, report.Results[2].Status)
	assert.Equal(t, StatusSkipped, report.Results[3].Status)
	assert.Equal(t, StatusSkipped, report.Results[4].Status)

	// Descriptors after the failure point are never attempted.
	assert.Equal(t, 0, fake.CallCount("kubectl apply -f "+descriptors[3].Path))
	assert.Equal(t, 0, fake.CallCount("kubectl apply -f "+descriptors[4].Path))
}

func TestApplyAll_OptionalFailureWarnsAndContinues(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)
	fake := toolrunner.NewFakeRunner()
	// The HPA apply fails; metrics-server may be missing.
	fake.Respond("kubectl apply -f "+descriptors[4].Path, "no matches for kind", errors.New("exit status 1"))

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	report, err := applier.ApplyAll(context.Background(), descriptors)

	require.NoError(t, err)
	warnings := report.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "hpa.yaml", warnings[0].Descriptor.Name())
	assert.Contains(t, warnings[0].Reason, "no matches for kind")
}

func TestApplyAll_RetriesTransientFailures(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)[:1]
	fake := toolrunner.NewFakeRunner()
	fake.Respond("kubectl apply", "The connection to the server was refused - connection refused", errors.New("exit status 1"))
	fake.Respond("kubectl apply", "namespace/mthree-demo created", nil)

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	report, err := applier.ApplyAll(context.Background(), descriptors)

	require.NoError(t, err)
	assert.Equal(t, StatusApplied, report.Results[0].Status)
	assert.Equal(t, 2, fake.CallCount("kubectl apply"))
}

func TestApplyAll_NonRetryableFailureFailsFast(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)[:1]
	fake := toolrunner.NewFakeRunner()
	fake.Respond("kubectl apply", "error validating data: unknown field", errors.New("exit status 1"))

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	_, err := applier.ApplyAll(context.Background(), descriptors)

	require.Error(t, err)
	// A validation error is not retried.
	assert.Equal(t, 1, fake.CallCount("kubectl apply"))
}

func TestApplyAll_KindMismatchFails(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeManifest(t, dir, "namespace.yaml", "apiVersion: v1\nkind: ConfigMap\nmetadata:\n  name: x\n")
	fake := toolrunner.NewFakeRunner()

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	_, err := applier.ApplyAll(context.Background(), []Descriptor{
		{Path: path, Kind: "Namespace", Required: true},
	})

	require.Error(t, err)
	// kubectl is never invoked for a manifest that fails verification.
	assert.Equal(t, 0, fake.CallCount("kubectl"))
}

func TestDelete(t *testing.T) {
	t.Parallel()
	fake := toolrunner.NewFakeRunner()

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	err := applier.Delete(context.Background(), Descriptor{Path: "k8s/service.yaml", Kind: "Service"})

	require.NoError(t, err)
	assert.Equal(t, []string{"kubectl delete -f k8s/service.yaml --ignore-not-found"}, fake.Calls())
}

func TestDelete_Failure(t *testing.T) {
	t.Parallel()
	fake := toolrunner.NewFakeRunner()
	fake.Respond("kubectl delete", "connection refused", errors.New("exit status 1"))

	applier := NewApplier(fake, nopLogger{}, testTimeouts())
	err := applier.Delete(context.Background(), Descriptor{Path: "k8s/service.yaml", Kind: "Service"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service.yaml")
}

// deadlineRunner records the context deadline each invocation ran under.
type deadlineRunner struct {
	deadlines []time.Time
	bounded   []bool
}

func (r *deadlineRunner) Run(ctx context.Context, _ toolrunner.Command) (string, error) {
	d, ok := ctx.Deadline()
	r.deadlines = append(r.deadlines, d)
	r.bounded = append(r.bounded, ok)
	return "", nil
}

func TestApplyAll_EachApplyRunsUnderDeadline(t *testing.T) {
	t.Parallel()
	descriptors := writeDescriptorSet(t)
	runner := &deadlineRunner{}

	applier := NewApplier(runner, nopLogger{}, testTimeouts())
	_, err := applier.ApplyAll(context.Background(), descriptors)

	require.NoError(t, err)
	require.Len(t, runner.bounded, 5)
	latest := time.Now().Add(time.Minute)
	for i := range runner.bounded {
		assert.True(t, runner.bounded[i], "apply %d ran without a deadline", i)
		assert.False(t, runner.deadlines[i].After(latest), "apply %d deadline exceeds the configured timeout", i)
	}
}

func TestDelete_RunsUnderDeadline(t *testing.T) {
	t.Parallel()
	runner := &deadlineRunner{}

	applier := NewApplier(runner, nopLogger{}, testTimeouts())
	err := applier.Delete(context.Background(), Descriptor{Path: "k8s/service.yaml", Kind: "Service"})

	require.NoError(t, err)
	require.Len(t, runner.bounded, 1)
	assert.True(t, runner.bounded[0])
}

func TestIsRetryableOutput(t *testing.T) {
	t.Parallel()
	assert.True(t, isRetryableOutput("unexpected EOF"))
	assert.True(t, isRetryableOutput("dial tcp: connection refused"))
	assert.True(t, isRetryableOutput("Unable to connect to the server"))
	assert.True(t, isRetryableOutput("read: connection reset by peer"))
	assert.False(t, isRetryableOutput("error validating data"))
}
