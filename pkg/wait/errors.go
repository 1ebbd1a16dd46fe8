package wait

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrTimeout is matched by failures caused by an elapsed timeout.
	ErrTimeout = errors.New("wait timed out")
	// ErrInterrupted is matched by failures caused by a canceled context.
	ErrInterrupted = errors.New("wait interrupted")
	// ErrInvalidStrategy is returned when a strategy is constructed with invalid arguments.
	ErrInvalidStrategy = errors.New("invalid wait strategy")
	// ErrUnsupportedTarget is returned when a strategy is applied to a target it cannot handle.
	ErrUnsupportedTarget = errors.New("unsupported wait target")
)

// Kind classifies a wait failure.
type Kind int

const (
	// KindTimeout means the deadline elapsed before the check succeeded.
	KindTimeout Kind = iota
	// KindInterrupted means the caller's context was done before the check succeeded.
	KindInterrupted
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	if k == KindInterrupted {
		return ErrInterrupted
	}

	return ErrTimeout
}

// Error describes a failed leaf wait.
type Error struct {
	Kind Kind
	// Strategy describes the check that failed.
	Strategy string
	// Target is the name of the workload.
	Target  string
	Elapsed time.Duration
	Timeout time.Duration
	// Detail holds the last observation of the check (status code, exit code, log tail).
	Detail string
	// Err is the last transient error for timeouts, or the context error for interruptions.
	Err error
}

func (e *Error) Error() string {
	var builder strings.Builder

	switch e.Kind {
	case KindInterrupted:
		fmt.Fprintf(&builder, "interrupted after %s waiting for %s on %q",
			formatDuration(e.Elapsed), e.Strategy, e.Target)
	default:
		fmt.Fprintf(&builder, "timed out after %s (timeout %s) waiting for %s on %q",
			formatDuration(e.Elapsed), formatDuration(e.Timeout), e.Strategy, e.Target)
	}

	if e.Err != nil {
		fmt.Fprintf(&builder, ": %v", e.Err)
	}

	if e.Detail != "" {
		builder.WriteString("\n")
		builder.WriteString(e.Detail)
	}

	return builder.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// SequenceError describes a failed step of a strategy sequence.
type SequenceError struct {
	// Index is the 1-based position of the failing strategy.
	Index int
	Total int
	// Strategy describes the failing strategy.
	Strategy string
	Target   string
	// NotStarted is set when the shared budget ran out before the strategy started.
	NotStarted bool
	// Elapsed and Timeout describe the shared budget when NotStarted is set.
	Elapsed time.Duration
	Timeout time.Duration
	// Err is the failure reported by the strategy, or ErrTimeout when NotStarted is set.
	Err error
}

func (e *SequenceError) Error() string {
	if e.NotStarted {
		return fmt.Sprintf("timed out after %s (timeout %s) before starting strategy %d of %d (%s) on %q",
			formatDuration(e.Elapsed), formatDuration(e.Timeout), e.Index, e.Total, e.Strategy, e.Target)
	}

	return fmt.Sprintf("strategy %d of %d (%s) failed on %q: %v",
		e.Index, e.Total, e.Strategy, e.Target, e.Err)
}

func (e *SequenceError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err was caused by an elapsed wait timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsInterrupted reports whether err was caused by a canceled wait.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStrategy, fmt.Sprintf(format, args...))
}
