package wait

import "context"

// Target is the workload a Strategy polls.
//
// Implementations are expected to return errors for conditions that may
// resolve on their own (pod not scheduled yet, service not exposed yet,
// connection refused). Strategies treat every error returned by a Target
// as transient and keep polling.
type Target interface {
	// Name identifies the workload in diagnostics.
	Name() string
	// IsReady reports the platform's readiness signal for the workload.
	IsReady(ctx context.Context) (bool, error)
	// Logs returns the full accumulated log output of the workload.
	Logs(ctx context.Context) (string, error)
	// ExternalHost returns the host reachable from the test process.
	ExternalHost(ctx context.Context) (string, error)
	// ExternalPort returns the primary port reachable from the test process.
	ExternalPort(ctx context.Context) (int, error)
	// Exec runs argv inside the workload and returns its outcome.
	Exec(ctx context.Context, argv ...string) (ExecResult, error)
}

// PortMapper is implemented by targets that expose more than one port.
// Port and HTTP strategies use it to translate the workload port they were
// configured with into the externally reachable one.
type PortMapper interface {
	MappedPort(ctx context.Context, port int) (int, error)
}

// ExecResult is the outcome of a command executed inside a workload.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with code 0.
func (r ExecResult) Success() bool {
	return r.ExitCode == 0
}

// resolvePort returns the external port for the given workload port.
func resolvePort(ctx context.Context, target Target, port int) (int, error) {
	if mapper, ok := target.(PortMapper); ok {
		return mapper.MappedPort(ctx, port)
	}

	return target.ExternalPort(ctx)
}
