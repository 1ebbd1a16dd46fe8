package wait

import (
	"context"
	"fmt"
	"time"
)

const (
	defaultConditionTimeout      = time.Minute
	defaultConditionPollInterval = time.Second
)

// ConditionFunc performs one readiness attempt against target. Returned errors
// are treated as transient.
type ConditionFunc func(ctx context.Context, target Target) (bool, error)

// ConditionStrategy polls an arbitrary ConditionFunc with the same timeout and
// failure semantics as the built-in strategies. It is the extension point for
// checks that need a client of their own, such as a database ping.
type ConditionStrategy struct {
	timing

	description string
	condition   ConditionFunc
}

func newConditionStrategy(description string, condition ConditionFunc) (ConditionStrategy, error) {
	if description == "" {
		return ConditionStrategy{}, invalidf("condition description must not be empty")
	}

	if condition == nil {
		return ConditionStrategy{}, invalidf("condition %q has no check", description)
	}

	return ConditionStrategy{
		timing:      timing{timeout: defaultConditionTimeout, pollInterval: defaultConditionPollInterval},
		description: description,
		condition:   condition,
	}, nil
}

// WaitUntilReady implements Strategy.
func (s ConditionStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	return run(ctx, target, probe{
		kind:        "condition",
		description: s.description,
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check: func(ctx context.Context) (bool, error) {
			return s.condition(ctx, target)
		},
	})
}

// WithTimeout implements Strategy.
func (s ConditionStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s ConditionStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s ConditionStrategy) String() string {
	return fmt.Sprintf("Condition[%s, timeout=%s]", s.description, formatDuration(s.timeout))
}
