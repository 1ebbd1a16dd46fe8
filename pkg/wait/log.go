package wait

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	defaultLogTimeout      = 2 * time.Minute
	defaultLogPollInterval = time.Second
)

// LogMessageStrategy waits until a pattern matches the target's logs a
// required number of times.
//
// The pattern runs in multi-line mode against the full log text on every
// attempt, so ^ and $ match at line boundaries. Matches do not overlap.
type LogMessageStrategy struct {
	timing

	regex   string
	pattern *regexp.Regexp
	times   int
}

func newLogMessageStrategy(regex string, times int) (LogMessageStrategy, error) {
	if times < 1 {
		return LogMessageStrategy{}, invalidf("log message occurrences must be at least 1, got %d", times)
	}

	pattern, err := regexp.Compile("(?m)" + regex)
	if err != nil {
		return LogMessageStrategy{}, invalidf("log message pattern %q: %v", regex, err)
	}

	return LogMessageStrategy{
		timing:  timing{timeout: defaultLogTimeout, pollInterval: defaultLogPollInterval},
		regex:   regex,
		pattern: pattern,
		times:   times,
	}, nil
}

// Regex returns the pattern as it was given.
func (s LogMessageStrategy) Regex() string {
	return s.regex
}

// Times returns the required number of matches.
func (s LogMessageStrategy) Times() int {
	return s.times
}

// WaitUntilReady implements Strategy.
func (s LogMessageStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	var (
		lastLogs  string
		lastCount int
	)

	return run(ctx, target, probe{
		kind:        "log-message",
		description: s.describe(),
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check: func(ctx context.Context) (bool, error) {
			logs, err := target.Logs(ctx)
			if err != nil {
				return false, fmt.Errorf("read logs: %w", err)
			}

			if logs == "" {
				return false, nil
			}

			lastLogs = logs
			lastCount = s.countMatches(logs)

			return lastCount >= s.times, nil
		},
		detail: func() string {
			var builder strings.Builder

			fmt.Fprintf(&builder, "found %d of %d matches", lastCount, s.times)

			if lastLogs != "" {
				builder.WriteString("\nlast log output:\n")
				builder.WriteString(tail(lastLogs, logSnippetLength))
			}

			return builder.String()
		},
	})
}

func (s LogMessageStrategy) countMatches(logs string) int {
	return len(s.pattern.FindAllStringIndex(logs, -1))
}

func (s LogMessageStrategy) describe() string {
	if s.times > 1 {
		return fmt.Sprintf("log message matching %q %d times", s.regex, s.times)
	}

	return fmt.Sprintf("log message matching %q", s.regex)
}

// WithTimeout implements Strategy.
func (s LogMessageStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s LogMessageStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s LogMessageStrategy) String() string {
	return fmt.Sprintf("LogMessage[regex=%q, times=%d, timeout=%s]",
		s.regex, s.times, formatDuration(s.timeout))
}
