package pod

import "errors"

var (
	// ErrPodNotFound is returned when no pod matches the handle.
	ErrPodNotFound = errors.New("pod not found")
	// ErrPodNotReady is returned by IsReady alongside false to describe why.
	ErrPodNotReady = errors.New("pod not ready")
	// ErrPortNotExposed is returned when no NodePort exposes the requested port.
	ErrPortNotExposed = errors.New("port not exposed")
	// ErrNoPrimaryPort is returned by ExternalPort when the handle has no primary port.
	ErrNoPrimaryPort = errors.New("no primary port configured")
	// ErrExecUnavailable is returned by Exec when the cluster has no REST config.
	ErrExecUnavailable = errors.New("exec requires a REST config")
)
