package wait

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	defaultCompositeTimeout      = 5 * time.Minute
	defaultCompositePollInterval = time.Second
)

// CompositeStrategy runs strategies in order under one shared timeout.
//
// Each strategy gets whatever is left of the shared budget as its own timeout
// and the composite's poll interval. The first failure stops the sequence.
type CompositeStrategy struct {
	timing

	strategies []Strategy
}

func newCompositeStrategy(strategies []Strategy) (CompositeStrategy, error) {
	if len(strategies) == 0 {
		return CompositeStrategy{}, invalidf("at least one strategy is required")
	}

	for i, strategy := range strategies {
		if strategy == nil {
			return CompositeStrategy{}, invalidf("strategy %d of %d is nil", i+1, len(strategies))
		}
	}

	return CompositeStrategy{
		timing:     timing{timeout: defaultCompositeTimeout, pollInterval: defaultCompositePollInterval},
		strategies: slices.Clone(strategies),
	}, nil
}

// Strategies returns a copy of the composed strategies.
func (s CompositeStrategy) Strategies() []Strategy {
	return slices.Clone(s.strategies)
}

// WaitUntilReady implements Strategy.
func (s CompositeStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	ctx, span := startSpan(ctx, "sequence", target, s.timeout)
	start := time.Now()

	err := s.runSequence(ctx, target, start)
	finish(span, "sequence", target, time.Since(start), err)

	return err
}

func (s CompositeStrategy) runSequence(ctx context.Context, target Target, start time.Time) error {
	total := len(s.strategies)

	for i, strategy := range s.strategies {
		elapsed := time.Since(start)

		remaining := s.timeout - elapsed
		if remaining <= 0 {
			return &SequenceError{
				Index:      i + 1,
				Total:      total,
				Strategy:   strategy.String(),
				Target:     target.Name(),
				NotStarted: true,
				Elapsed:    elapsed,
				Timeout:    s.timeout,
				Err:        ErrTimeout,
			}
		}

		step := strategy.WithTimeout(remaining).WithPollInterval(s.pollInterval)

		err := step.WaitUntilReady(ctx, target)
		if err != nil {
			return &SequenceError{
				Index:    i + 1,
				Total:    total,
				Strategy: strategy.String(),
				Target:   target.Name(),
				Err:      err,
			}
		}
	}

	return nil
}

// WithTimeout implements Strategy. The timeout is the budget shared by all strategies.
func (s CompositeStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy. The interval is applied to every composed strategy.
func (s CompositeStrategy) WithPollInterval(interval time.Duration) Strategy {
	strategies := make([]Strategy, len(s.strategies))
	for i, strategy := range s.strategies {
		strategies[i] = strategy.WithPollInterval(interval)
	}

	s.strategies = strategies
	s.pollInterval = interval

	return s
}

func (s CompositeStrategy) String() string {
	names := make([]string, len(s.strategies))
	for i, strategy := range s.strategies {
		names[i] = strategy.String()
	}

	return fmt.Sprintf("AllOf[%s, timeout=%s]", strings.Join(names, ", "), formatDuration(s.timeout))
}
