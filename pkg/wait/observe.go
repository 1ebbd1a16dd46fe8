package wait

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/devantler-tech/testpods/pkg/wait"

// Result labels of the duration histogram.
const (
	resultReady       = "ready"
	resultTimeout     = "timeout"
	resultInterrupted = "interrupted"
)

//nolint:gochecknoglobals // Collectors are process-wide by nature.
var (
	attemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "testpods",
		Subsystem: "wait",
		Name:      "attempts_total",
		Help:      "Number of readiness check attempts, by strategy.",
	}, []string{"strategy"})

	durationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "testpods",
		Subsystem: "wait",
		Name:      "duration_seconds",
		Help:      "Time spent in WaitUntilReady, by strategy and result.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 14),
	}, []string{"strategy", "result"})

	loggerHolder atomic.Pointer[logrus.FieldLogger]
)

// SetLogger replaces the logger used by all strategies. A nil logger restores
// the logrus standard logger.
func SetLogger(logger logrus.FieldLogger) {
	if logger == nil {
		loggerHolder.Store(nil)

		return
	}

	loggerHolder.Store(&logger)
}

func currentLogger() logrus.FieldLogger {
	if logger := loggerHolder.Load(); logger != nil {
		return *logger
	}

	return logrus.StandardLogger()
}

// RegisterMetrics registers the wait collectors with registerer.
// Registering the same collectors twice is not an error.
func RegisterMetrics(registerer prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{attemptsTotal, durationSeconds} {
		err := registerer.Register(collector)
		if err == nil {
			continue
		}

		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			continue
		}

		return fmt.Errorf("register wait metrics: %w", err)
	}

	return nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return resultReady
	case IsInterrupted(err):
		return resultInterrupted
	default:
		return resultTimeout
	}
}

func startSpan(
	ctx context.Context,
	strategy string,
	target Target,
	timeout time.Duration,
) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "wait."+strategy, trace.WithAttributes(
		attribute.String("testpods.target", target.Name()),
		attribute.String("testpods.wait.strategy", strategy),
		attribute.Int64("testpods.wait.timeout_ms", timeout.Milliseconds()),
	))
}

// finish records the outcome of a wait on its span, metrics and log.
func finish(span trace.Span, strategy string, target Target, elapsed time.Duration, err error) {
	durationSeconds.WithLabelValues(strategy, resultOf(err)).Observe(elapsed.Seconds())

	entry := currentLogger().WithFields(logrus.Fields{
		"strategy": strategy,
		"target":   target.Name(),
		"elapsed":  elapsed.String(),
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, resultOf(err))
		entry.WithError(err).Warn("wait failed")
	} else {
		entry.Debug("target ready")
	}

	span.End()
}
