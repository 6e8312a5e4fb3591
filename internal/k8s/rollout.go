package k8s

import (
	"context"
	"errors"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"
)

// RolloutState is the observed state of a workload rollout.
type RolloutState string

const (
	// RolloutPending means the deployment does not exist or has no replicas yet.
	RolloutPending RolloutState = "pending"
	// RolloutProgressing means some but not all replicas are available.
	RolloutProgressing RolloutState = "progressing"
	// RolloutReady means all desired replicas are available.
	RolloutReady RolloutState = "ready"
	// RolloutTimedOut means the deadline elapsed before readiness.
	RolloutTimedOut RolloutState = "timed-out"
)

// RolloutTarget identifies the workload whose rollout is monitored.
type RolloutTarget struct {
	Deployment string
	Namespace  string
}

// WaitReady polls the deployment's readiness at the given interval until it
// is ready or the timeout elapses. On timeout it returns RolloutTimedOut
// with a nil error; the caller treats this as a warned, non-fatal state and
// collects diagnostics.
func (c *Client) WaitReady(ctx context.Context, target RolloutTarget, interval, timeout time.Duration) (RolloutState, error) {
	state := RolloutPending

	err := wait.PollUntilContextTimeout(ctx, interval, timeout, true, func(ctx context.Context) (bool, error) {
		deployment, err := c.clientset.AppsV1().Deployments(target.Namespace).Get(ctx, target.Deployment, metav1.GetOptions{})
		if err != nil {
			state = RolloutPending
			return false, nil
		}

		if isDeploymentReady(deployment) {
			state = RolloutReady
			return true, nil
		}

		if deployment.Status.ReadyReplicas > 0 || deployment.Status.UpdatedReplicas > 0 {
			state = RolloutProgressing
		}
		return false, nil
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || wait.Interrupted(err) {
			return RolloutTimedOut, nil
		}
		return state, err
	}

	return RolloutReady, nil
}

// isDeploymentReady checks that every desired replica is updated and available.
func isDeploymentReady(deployment *appsv1.Deployment) bool {
	desired := int32(1)
	if deployment.Spec.Replicas != nil {
		desired = *deployment.Spec.Replicas
	}

	if deployment.Status.UpdatedReplicas < desired {
		return false
	}
	if deployment.Status.AvailableReplicas < desired {
		return false
	}

	for _, condition := range deployment.Status.Conditions {
		if condition.Type == appsv1.DeploymentAvailable &&
			condition.Status == corev1.ConditionTrue {
			return true
		}
	}

	return false
}
