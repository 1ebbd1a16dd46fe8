package pod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/devantler-tech/testpods/pkg/cluster"
	"github.com/devantler-tech/testpods/pkg/wait"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	utilexec "k8s.io/client-go/util/exec"
)

// Handle is a wait.Target for one pod.
type Handle struct {
	name      string
	namespace string
	selector  string
	container string
	service   string

	primaryPort  int
	externalHost string
	portMappings map[int]int

	client     kubernetes.Interface
	accessHost string
	executor   Executor
}

// Option configures a Handle.
type Option func(*Handle)

// WithSelector selects the pod by label selector instead of by name. The name
// is still used in diagnostics and as the default service name.
func WithSelector(selector string) Option {
	return func(h *Handle) {
		h.selector = selector
	}
}

// WithContainer sets the container used for logs and exec.
func WithContainer(container string) Option {
	return func(h *Handle) {
		h.container = container
	}
}

// WithService sets the service exposing the pod's ports. Defaults to the handle name.
func WithService(service string) Option {
	return func(h *Handle) {
		h.service = service
	}
}

// WithPrimaryPort sets the workload port ExternalPort resolves.
func WithPrimaryPort(port int) Option {
	return func(h *Handle) {
		h.primaryPort = port
	}
}

// WithExternalHost overrides the cluster access host, for example when the
// test reaches the workload through a port forward.
func WithExternalHost(host string) Option {
	return func(h *Handle) {
		h.externalHost = host
	}
}

// WithPortMapping maps a workload port to a fixed external port instead of
// looking up a NodePort.
func WithPortMapping(port, external int) Option {
	return func(h *Handle) {
		if h.portMappings == nil {
			h.portMappings = map[int]int{}
		}

		h.portMappings[port] = external
	}
}

// WithExecutor replaces the exec transport.
func WithExecutor(executor Executor) Option {
	return func(h *Handle) {
		h.executor = executor
	}
}

// New returns a Handle for the pod name in namespace of c.
func New(c *cluster.Cluster, namespace, name string, opts ...Option) *Handle {
	handle := &Handle{
		name:       name,
		namespace:  namespace,
		client:     c.Client,
		accessHost: c.AccessHost,
		executor:   spdyExecutor{client: c.Client, restConfig: c.RESTConfig},
	}

	for _, opt := range opts {
		opt(handle)
	}

	handle.portMappings = maps.Clone(handle.portMappings)

	return handle
}

// Name implements wait.Target.
func (h *Handle) Name() string {
	return h.namespace + "/" + h.name
}

// Namespace returns the namespace of the pod.
func (h *Handle) Namespace() string {
	return h.namespace
}

// IsReady implements wait.Target. When the pod is not ready the returned
// error wraps ErrPodNotReady and describes the reason.
func (h *Handle) IsReady(ctx context.Context) (bool, error) {
	pod, err := h.pod(ctx)
	if err != nil {
		return false, err
	}

	if isPodReady(pod) {
		return true, nil
	}

	return false, fmt.Errorf("%w: %s", ErrPodNotReady, describeNotReady(pod))
}

// Logs implements wait.Target.
func (h *Handle) Logs(ctx context.Context) (string, error) {
	pod, err := h.pod(ctx)
	if err != nil {
		return "", err
	}

	raw, err := h.client.CoreV1().Pods(h.namespace).
		GetLogs(pod.Name, &corev1.PodLogOptions{Container: h.container}).
		DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("logs of %s: %w", pod.Name, err)
	}

	return string(raw), nil
}

// ExternalHost implements wait.Target.
func (h *Handle) ExternalHost(context.Context) (string, error) {
	if h.externalHost != "" {
		return h.externalHost, nil
	}

	return h.accessHost, nil
}

// ExternalPort implements wait.Target.
func (h *Handle) ExternalPort(ctx context.Context) (int, error) {
	if h.primaryPort == 0 {
		return 0, fmt.Errorf("%s: %w", h.Name(), ErrNoPrimaryPort)
	}

	return h.MappedPort(ctx, h.primaryPort)
}

// MappedPort implements wait.PortMapper. It returns the NodePort of the
// service port whose port or target port is port.
func (h *Handle) MappedPort(ctx context.Context, port int) (int, error) {
	if external, ok := h.portMappings[port]; ok {
		return external, nil
	}

	serviceName := h.service
	if serviceName == "" {
		serviceName = h.name
	}

	service, err := h.client.CoreV1().Services(h.namespace).Get(ctx, serviceName, metav1.GetOptions{})
	if err != nil {
		return 0, fmt.Errorf("service %s/%s: %w", h.namespace, serviceName, err)
	}

	for _, servicePort := range service.Spec.Ports {
		matches := int(servicePort.Port) == port || servicePort.TargetPort.IntValue() == port
		if matches && servicePort.NodePort != 0 {
			return int(servicePort.NodePort), nil
		}
	}

	return 0, fmt.Errorf("%w: %d on service %s/%s", ErrPortNotExposed, port, h.namespace, serviceName)
}

// Exec implements wait.Target. A non-zero exit status is a result, not an error.
func (h *Handle) Exec(ctx context.Context, argv ...string) (wait.ExecResult, error) {
	pod, err := h.pod(ctx)
	if err != nil {
		return wait.ExecResult{}, err
	}

	var stdout, stderr bytes.Buffer

	err = h.executor.Exec(ctx, ExecRequest{
		Namespace: h.namespace,
		Pod:       pod.Name,
		Container: h.container,
		Command:   slices.Clone(argv),
	}, &stdout, &stderr)

	result := wait.ExecResult{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr utilexec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitStatus()

		return result, nil
	}

	if err != nil {
		return result, fmt.Errorf("exec %q in %s: %w", strings.Join(argv, " "), pod.Name, err)
	}

	return result, nil
}

// pod fetches the pod by name, or the first pod matching the selector.
func (h *Handle) pod(ctx context.Context) (*corev1.Pod, error) {
	pods := h.client.CoreV1().Pods(h.namespace)

	if h.selector == "" {
		pod, err := pods.Get(ctx, h.name, metav1.GetOptions{})
		if apierrors.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrPodNotFound, h.Name())
		}

		if err != nil {
			return nil, fmt.Errorf("get pod %s: %w", h.Name(), err)
		}

		return pod, nil
	}

	list, err := pods.List(ctx, metav1.ListOptions{LabelSelector: h.selector})
	if err != nil {
		return nil, fmt.Errorf("list pods %s in %s: %w", h.selector, h.namespace, err)
	}

	if len(list.Items) == 0 {
		return nil, fmt.Errorf("%w: no pod matches %s in %s", ErrPodNotFound, h.selector, h.namespace)
	}

	slices.SortFunc(list.Items, func(a, b corev1.Pod) int {
		return strings.Compare(a.Name, b.Name)
	})

	return &list.Items[0], nil
}

var (
	_ wait.Target     = (*Handle)(nil)
	_ wait.PortMapper = (*Handle)(nil)
)
