package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const diagnosticLogTail = int64(50)

// PodSummary is the state of one pod at diagnostics collection time.
type PodSummary struct {
	Name     string
	Phase    string
	Ready    bool
	Restarts int32
}

// Diagnostics is the state gathered when a rollout times out, so the
// operator gets the most complete picture possible in one run.
type Diagnostics struct {
	Pods []PodSummary

	// Logs maps pod name to its recent log tail. At most podSamples pods
	// are sampled.
	Logs map[string]string
}

// CollectDiagnostics lists the pods behind the workload and tails logs from
// up to podSamples of them. Collection is best-effort: a pod whose logs
// cannot be fetched gets the error text recorded in its place.
func (c *Client) CollectDiagnostics(ctx context.Context, namespace, labelSelector string, podSamples int) (*Diagnostics, error) {
	podList, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: labelSelector,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pods: %w", err)
	}

	diag := &Diagnostics{Logs: make(map[string]string)}

	for _, pod := range podList.Items {
		diag.Pods = append(diag.Pods, summarizePod(&pod))
	}

	if podSamples < 1 {
		podSamples = 1
	}
	for i, pod := range podList.Items {
		if i >= podSamples {
			break
		}
		logs, err := c.podLogs(ctx, namespace, pod.Name)
		if err != nil {
			diag.Logs[pod.Name] = fmt.Sprintf("<failed to fetch logs: %v>", err)
			continue
		}
		diag.Logs[pod.Name] = logs
	}

	return diag, nil
}

// podLogs tails the recent log lines of a single pod.
func (c *Client) podLogs(ctx context.Context, namespace, name string) (string, error) {
	tail := diagnosticLogTail
	req := c.clientset.CoreV1().Pods(namespace).GetLogs(name, &corev1.PodLogOptions{
		TailLines: &tail,
	})

	logs, err := req.DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get pod logs: %w", err)
	}
	return string(logs), nil
}

func summarizePod(pod *corev1.Pod) PodSummary {
	summary := PodSummary{
		Name:  pod.Name,
		Phase: string(pod.Status.Phase),
	}

	for _, condition := range pod.Status.Conditions {
		if condition.Type == corev1.PodReady && condition.Status == corev1.ConditionTrue {
			summary.Ready = true
		}
	}
	for _, cs := range pod.Status.ContainerStatuses {
		summary.Restarts += cs.RestartCount
	}

	return summary
}
