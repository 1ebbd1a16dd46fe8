package wait

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	apiwait "k8s.io/apimachinery/pkg/util/wait"
)

// minPollInterval guards against busy loops when a non-positive interval is configured.
const minPollInterval = 10 * time.Millisecond

// probe is one polling loop of a leaf strategy.
type probe struct {
	// kind labels metrics, spans and log entries.
	kind string
	// description names the check in failure messages.
	description string
	timeout     time.Duration
	interval    time.Duration
	// check performs one attempt. Errors are transient and only recorded.
	check func(ctx context.Context) (bool, error)
	// detail renders the last observation when the wait fails. Optional.
	detail func() string
}

// run polls p.check against target until it succeeds, the timeout elapses or
// ctx is done. The deadline is derived from the time run is called.
func run(ctx context.Context, target Target, p probe) error {
	ctx, span := startSpan(ctx, p.kind, target, p.timeout)
	start := time.Now()

	err := poll(ctx, target, p, start)
	finish(span, p.kind, target, time.Since(start), err)

	return err
}

func poll(ctx context.Context, target Target, p probe, start time.Time) error {
	interval := p.interval
	if interval <= 0 {
		interval = minPollInterval
	}

	log := currentLogger().WithFields(logrus.Fields{
		"strategy": p.kind,
		"target":   target.Name(),
	})

	var lastErr error

	pollErr := apiwait.PollUntilContextTimeout(ctx, interval, p.timeout, true,
		func(ctx context.Context) (bool, error) {
			attemptsTotal.WithLabelValues(p.kind).Inc()

			ready, err := p.check(ctx)
			if err != nil {
				lastErr = err
				log.WithError(err).Debug("check failed, retrying")

				return false, nil
			}

			return ready, nil
		})
	if pollErr == nil {
		return nil
	}

	failure := &Error{
		Kind:     KindTimeout,
		Strategy: p.description,
		Target:   target.Name(),
		Elapsed:  time.Since(start),
		Timeout:  p.timeout,
		Err:      lastErr,
	}

	// The poll loop owns its own deadline; a done parent context means the
	// caller gave up.
	if ctxErr := ctx.Err(); ctxErr != nil {
		failure.Kind = KindInterrupted
		failure.Err = ctxErr
	}

	if p.detail != nil {
		failure.Detail = p.detail()
	}

	return failure
}
