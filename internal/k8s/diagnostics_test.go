package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func testPod(name string, phase corev1.PodPhase, ready bool, restarts int32) *corev1.Pod {
	readyStatus := corev1.ConditionFalse
	if ready {
		readyStatus = corev1.ConditionTrue
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: "mthree-demo",
			Labels:    map[string]string{"app": "flask-hello"},
		},
		Status: corev1.PodStatus{
			Phase: phase,
			Conditions: []corev1.PodCondition{
				{Type: corev1.PodReady, Status: readyStatus},
			},
			ContainerStatuses: []corev1.ContainerStatus{
				{RestartCount: restarts},
			},
		},
	}
}

func TestCollectDiagnostics(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(
		testPod("flask-hello-abc", corev1.PodRunning, true, 0),
		testPod("flask-hello-def", corev1.PodPending, false, 3),
	)
	client := NewClientForClientset(clientset)

	diag, err := client.CollectDiagnostics(context.Background(), "mthree-demo", "app=flask-hello", 1)
	require.NoError(t, err)

	require.Len(t, diag.Pods, 2)
	assert.Equal(t, "flask-hello-abc", diag.Pods[0].Name)
	assert.Equal(t, "Running", diag.Pods[0].Phase)
	assert.True(t, diag.Pods[0].Ready)
	assert.Equal(t, int32(0), diag.Pods[0].Restarts)

	assert.Equal(t, "Pending", diag.Pods[1].Phase)
	assert.False(t, diag.Pods[1].Ready)
	assert.Equal(t, int32(3), diag.Pods[1].Restarts)

	// Logs are sampled from at most podSamples pods.
	assert.Len(t, diag.Logs, 1)
	assert.Contains(t, diag.Logs, "flask-hello-abc")
}

func TestCollectDiagnostics_NoPods(t *testing.T) {
	t.Parallel()
	client := NewClientForClientset(fake.NewSimpleClientset())

	diag, err := client.CollectDiagnostics(context.Background(), "mthree-demo", "app=flask-hello", 1)
	require.NoError(t, err)
	assert.Empty(t, diag.Pods)
	assert.Empty(t, diag.Logs)
}

func TestCollectDiagnostics_PodSamplesFloor(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(
		testPod("flask-hello-abc", corev1.PodRunning, true, 0),
		testPod("flask-hello-def", corev1.PodRunning, true, 0),
	)
	client := NewClientForClientset(clientset)

	diag, err := client.CollectDiagnostics(context.Background(), "mthree-demo", "app=flask-hello", 0)
	require.NoError(t, err)
	assert.Len(t, diag.Logs, 1)
}
