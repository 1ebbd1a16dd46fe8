package wait

import (
	"context"
	"fmt"
	"time"
)

// Strategy decides when a Target is ready.
//
// Implementations are immutable: the With methods return a modified copy.
type Strategy interface {
	// WaitUntilReady blocks until target is ready, the strategy's timeout
	// elapses or ctx is done.
	WaitUntilReady(ctx context.Context, target Target) error
	// WithTimeout returns a copy of the strategy with a different timeout.
	WithTimeout(timeout time.Duration) Strategy
	// WithPollInterval returns a copy of the strategy with a different poll interval.
	WithPollInterval(interval time.Duration) Strategy
	Timeout() time.Duration
	PollInterval() time.Duration
	fmt.Stringer
}

// timing holds the configuration every strategy shares.
type timing struct {
	timeout      time.Duration
	pollInterval time.Duration
}

// Timeout returns the configured timeout.
func (t timing) Timeout() time.Duration {
	return t.timeout
}

// PollInterval returns the configured poll interval.
func (t timing) PollInterval() time.Duration {
	return t.pollInterval
}

// ForReadinessProbe waits for the target's own readiness signal.
func ForReadinessProbe() ReadinessProbeStrategy {
	return newReadinessProbeStrategy()
}

// ForLogMessage waits for regex to match the target's logs once.
func ForLogMessage(regex string) (LogMessageStrategy, error) {
	return newLogMessageStrategy(regex, 1)
}

// ForLogMessageTimes waits for regex to match the target's logs at least times times.
func ForLogMessageTimes(regex string, times int) (LogMessageStrategy, error) {
	return newLogMessageStrategy(regex, times)
}

// ForPort waits for a TCP connection to the target's port to succeed.
func ForPort(port int) (PortStrategy, error) {
	return newPortStrategy(port)
}

// ForPortSpec is like ForPort for a port given as "port" or "port/tcp".
// Other protocols are rejected.
func ForPortSpec(spec string) (PortStrategy, error) {
	return newPortStrategyFromSpec(spec)
}

// ForHTTP waits for the target to answer a request to path on port with an accepted status.
func ForHTTP(path string, port int) (HTTPStrategy, error) {
	return newHTTPStrategy(path, port)
}

// ForCommand waits for argv executed in the target to exit with code 0.
func ForCommand(argv ...string) (CommandStrategy, error) {
	return newCommandStrategy(argv)
}

// ForCondition waits for condition to report true. description names the
// check in failure messages.
func ForCondition(description string, condition ConditionFunc) (ConditionStrategy, error) {
	return newConditionStrategy(description, condition)
}

// AllOf runs strategies in order under one shared timeout budget.
func AllOf(strategies ...Strategy) (CompositeStrategy, error) {
	return newCompositeStrategy(strategies)
}

// MustForLogMessage is like ForLogMessage but panics on an invalid pattern.
// It is meant for package-level strategy definitions.
func MustForLogMessage(regex string) LogMessageStrategy {
	return must(ForLogMessage(regex))
}

// MustForLogMessageTimes is like ForLogMessageTimes but panics on an invalid
// pattern or count.
func MustForLogMessageTimes(regex string, times int) LogMessageStrategy {
	return must(ForLogMessageTimes(regex, times))
}

// MustForPort is like ForPort but panics on a port outside 1-65535.
func MustForPort(port int) PortStrategy {
	return must(ForPort(port))
}

// MustForHTTP is like ForHTTP but panics on a port outside 1-65535.
func MustForHTTP(path string, port int) HTTPStrategy {
	return must(ForHTTP(path, port))
}

// MustForCommand is like ForCommand but panics on an empty command.
func MustForCommand(argv ...string) CommandStrategy {
	return must(ForCommand(argv...))
}

// MustForCondition is like ForCondition but panics on a missing description or check.
func MustForCondition(description string, condition ConditionFunc) ConditionStrategy {
	return must(ForCondition(description, condition))
}

// MustAllOf is like AllOf but panics on an empty or nil-containing list.
func MustAllOf(strategies ...Strategy) CompositeStrategy {
	return must(AllOf(strategies...))
}

func must[T Strategy](strategy T, err error) T {
	if err != nil {
		panic(err)
	}

	return strategy
}

var (
	_ Strategy = ReadinessProbeStrategy{}
	_ Strategy = LogMessageStrategy{}
	_ Strategy = PortStrategy{}
	_ Strategy = HTTPStrategy{}
	_ Strategy = CommandStrategy{}
	_ Strategy = ConditionStrategy{}
	_ Strategy = CompositeStrategy{}
)
