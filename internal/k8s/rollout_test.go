package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func int32Ptr(v int32) *int32 { return &v }

func readyDeployment(name, namespace string, replicas int32) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec:       appsv1.DeploymentSpec{Replicas: int32Ptr(replicas)},
		Status: appsv1.DeploymentStatus{
			UpdatedReplicas:   replicas,
			AvailableReplicas: replicas,
			ReadyReplicas:     replicas,
			Conditions: []appsv1.DeploymentCondition{
				{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
			},
		},
	}
}

func TestWaitReady_AlreadyReady(t *testing.T) {
	t.Parallel()
	clientset := fake.NewSimpleClientset(readyDeployment("flask-hello", "mthree-demo", 2))
	client := NewClientForClientset(clientset)

	state, err := client.WaitReady(context.Background(),
		RolloutTarget{Deployment: "flask-hello", Namespace: "mthree-demo"},
		10*time.Millisecond, time.Second)

	require.NoError(t, err)
	assert.Equal(t, RolloutReady, state)
}

func TestWaitReady_TimeoutIsNonFatal(t *testing.T) {
	t.Parallel()
	deployment := readyDeployment("flask-hello", "mthree-demo", 2)
	deployment.Status.AvailableReplicas = 1
	deployment.Status.Conditions = nil
	clientset := fake.NewSimpleClientset(deployment)
	client := NewClientForClientset(clientset)

	state, err := client.WaitReady(context.Background(),
		RolloutTarget{Deployment: "flask-hello", Namespace: "mthree-demo"},
		5*time.Millisecond, 30*time.Millisecond)

	// Timeout maps to a state, not an error.
	require.NoError(t, err)
	assert.Equal(t, RolloutTimedOut, state)
}

func TestWaitReady_MissingDeploymentTimesOut(t *testing.T) {
	t.Parallel()
	client := NewClientForClientset(fake.NewSimpleClientset())

	state, err := client.WaitReady(context.Background(),
		RolloutTarget{Deployment: "absent", Namespace: "mthree-demo"},
		5*time.Millisecond, 30*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, RolloutTimedOut, state)
}

func TestIsDeploymentReady(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*appsv1.Deployment)
		want   bool
	}{
		{
			name:   "fully ready",
			mutate: func(*appsv1.Deployment) {},
			want:   true,
		},
		{
			name:   "not all updated",
			mutate: func(d *appsv1.Deployment) { d.Status.UpdatedReplicas = 1 },
			want:   false,
		},
		{
			name:   "not all available",
			mutate: func(d *appsv1.Deployment) { d.Status.AvailableReplicas = 1 },
			want:   false,
		},
		{
			name:   "available condition missing",
			mutate: func(d *appsv1.Deployment) { d.Status.Conditions = nil },
			want:   false,
		},
		{
			name: "nil replicas defaults to one",
			mutate: func(d *appsv1.Deployment) {
				d.Spec.Replicas = nil
				d.Status.UpdatedReplicas = 1
				d.Status.AvailableReplicas = 1
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deployment := readyDeployment("x", "ns", 2)
			tt.mutate(deployment)
			assert.Equal(t, tt.want, isDeploymentReady(deployment))
		})
	}
}
