package wait

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	defaultCommandTimeout      = time.Minute
	defaultCommandPollInterval = 500 * time.Millisecond
)

// CommandStrategy waits until a command executed inside the target exits with
// code 0. Execution errors, such as the workload not accepting exec yet, are
// retried.
type CommandStrategy struct {
	timing

	argv []string
}

func newCommandStrategy(argv []string) (CommandStrategy, error) {
	if len(argv) == 0 || argv[0] == "" {
		return CommandStrategy{}, invalidf("command must not be empty")
	}

	return CommandStrategy{
		timing: timing{timeout: defaultCommandTimeout, pollInterval: defaultCommandPollInterval},
		argv:   slices.Clone(argv),
	}, nil
}

// Command returns a copy of the argument vector.
func (s CommandStrategy) Command() []string {
	return slices.Clone(s.argv)
}

// WaitUntilReady implements Strategy.
func (s CommandStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	var lastResult *ExecResult

	return run(ctx, target, probe{
		kind:        "command",
		description: fmt.Sprintf("command %q", strings.Join(s.argv, " ")),
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check: func(ctx context.Context) (bool, error) {
			result, err := target.Exec(ctx, s.argv...)
			if err != nil {
				return false, fmt.Errorf("exec: %w", err)
			}

			lastResult = &result

			return result.Success(), nil
		},
		detail: func() string {
			if lastResult == nil {
				return "command never ran"
			}

			var builder strings.Builder

			fmt.Fprintf(&builder, "last exit code: %d", lastResult.ExitCode)

			if lastResult.Stderr != "" {
				builder.WriteString("\nstderr: ")
				builder.WriteString(truncate(lastResult.Stderr, outputSnippetLength))
			}

			if lastResult.Stdout != "" {
				builder.WriteString("\nstdout: ")
				builder.WriteString(truncate(lastResult.Stdout, outputSnippetLength))
			}

			return builder.String()
		},
	})
}

// WithTimeout implements Strategy.
func (s CommandStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s CommandStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s CommandStrategy) String() string {
	return fmt.Sprintf("Command[command=%q, timeout=%s]",
		strings.Join(s.argv, " "), formatDuration(s.timeout))
}
