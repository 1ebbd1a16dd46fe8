// Package wait provides composable readiness checks for workloads under test.
//
// A Strategy answers one question: is this already-created resource ready to
// use? Leaf strategies poll a single signal of a Target until it reports
// ready or the strategy's timeout elapses:
//
//   - ForReadinessProbe waits for the platform's own readiness signal
//   - ForLogMessage waits for a regular expression to appear in the logs
//   - ForPort waits for a TCP connection to succeed
//   - ForHTTP waits for an HTTP endpoint to answer with an accepted status
//   - ForCommand waits for a command executed in the workload to exit with 0
//
// AllOf runs strategies in order under one shared timeout budget.
//
// Strategies are immutable values. WithTimeout, WithPollInterval and the
// strategy-specific options return a modified copy and leave the receiver
// untouched, so a single strategy can be shared between goroutines and reused
// for any number of targets. The deadline is computed on every call to
// WaitUntilReady.
//
// Failures are reported as *Error (or *SequenceError for AllOf) and can be
// classified without inspecting messages:
//
//	err := wait.MustForHTTP("/health", 8080).WaitUntilReady(ctx, target)
//	switch {
//	case wait.IsTimeout(err):
//		// the endpoint never became healthy
//	case wait.IsInterrupted(err):
//		// ctx was canceled; errors.Is(err, context.Canceled) also holds
//	}
package wait
