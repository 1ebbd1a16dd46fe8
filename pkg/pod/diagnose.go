package pod

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
)

// isPodReady reports whether the pod has condition Ready=True.
func isPodReady(pod *corev1.Pod) bool {
	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady {
			return cond.Status == corev1.ConditionTrue
		}
	}

	return false
}

// describeNotReady returns a single-line description of why a pod is not ready.
func describeNotReady(pod *corev1.Pod) string {
	// Waiting reasons such as ImagePullBackOff or CrashLoopBackOff explain the most.
	for _, container := range pod.Status.ContainerStatuses {
		if container.State.Waiting != nil && container.State.Waiting.Reason != "" {
			return fmt.Sprintf(
				"%s: %s for %s",
				pod.Name, container.State.Waiting.Reason, container.Image,
			)
		}

		if container.State.Terminated != nil && container.State.Terminated.ExitCode != 0 {
			return fmt.Sprintf(
				"%s: terminated with exit code %d (%s)",
				pod.Name, container.State.Terminated.ExitCode, container.State.Terminated.Reason,
			)
		}
	}

	for _, container := range pod.Status.InitContainerStatuses {
		if container.State.Waiting != nil && container.State.Waiting.Reason != "" {
			return fmt.Sprintf(
				"%s: init container %s: %s for %s",
				pod.Name, container.Name, container.State.Waiting.Reason, container.Image,
			)
		}
	}

	for _, cond := range pod.Status.Conditions {
		if cond.Type == corev1.PodReady && cond.Message != "" {
			return fmt.Sprintf("%s: %s", pod.Name, cond.Message)
		}
	}

	if pod.Status.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", pod.Name, pod.Status.Phase, pod.Status.Reason)
	}

	return fmt.Sprintf("%s: %s", pod.Name, pod.Status.Phase)
}
