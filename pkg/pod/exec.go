package pod

import (
	"context"
	"fmt"
	"io"
	"net/http"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"
)

// Executor runs a command in a pod container.
//
// A non-zero exit status is reported as an error implementing
// k8s.io/client-go/util/exec.ExitError.
type Executor interface {
	Exec(ctx context.Context, req ExecRequest, stdout, stderr io.Writer) error
}

// ExecRequest identifies the container and command of an exec call.
type ExecRequest struct {
	Namespace string
	Pod       string
	// Container may be empty for single-container pods.
	Container string
	Command   []string
}

// spdyExecutor executes commands through the pods/exec subresource.
type spdyExecutor struct {
	client     kubernetes.Interface
	restConfig *rest.Config
}

func (e spdyExecutor) Exec(ctx context.Context, req ExecRequest, stdout, stderr io.Writer) error {
	if e.restConfig == nil {
		return ErrExecUnavailable
	}

	request := e.client.CoreV1().RESTClient().Post().
		Resource("pods").
		Namespace(req.Namespace).
		Name(req.Pod).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Container: req.Container,
			Command:   req.Command,
			Stdout:    true,
			Stderr:    true,
		}, scheme.ParameterCodec)

	executor, err := remotecommand.NewSPDYExecutor(e.restConfig, http.MethodPost, request.URL())
	if err != nil {
		return fmt.Errorf("create executor: %w", err)
	}

	return executor.StreamWithContext(ctx, remotecommand.StreamOptions{
		Stdout: stdout,
		Stderr: stderr,
	})
}
