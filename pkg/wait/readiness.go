package wait

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultReadinessTimeout      = 2 * time.Minute
	defaultReadinessPollInterval = time.Second
)

// ReadinessProbeStrategy waits until Target.IsReady reports true.
type ReadinessProbeStrategy struct {
	timing
}

func newReadinessProbeStrategy() ReadinessProbeStrategy {
	return ReadinessProbeStrategy{
		timing: timing{timeout: defaultReadinessTimeout, pollInterval: defaultReadinessPollInterval},
	}
}

// WaitUntilReady implements Strategy.
func (s ReadinessProbeStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	return run(ctx, target, probe{
		kind:        "readiness-probe",
		description: "readiness probe",
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check:       target.IsReady,
	})
}

// WithTimeout implements Strategy.
func (s ReadinessProbeStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s ReadinessProbeStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s ReadinessProbeStrategy) String() string {
	return fmt.Sprintf("ReadinessProbe[timeout=%s, pollInterval=%s]",
		formatDuration(s.timeout), formatDuration(s.pollInterval))
}
