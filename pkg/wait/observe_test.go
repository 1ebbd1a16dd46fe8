package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTarget struct {
	ready bool
}

func (s staticTarget) Name() string                                { return "static" }
func (s staticTarget) IsReady(context.Context) (bool, error)       { return s.ready, nil }
func (s staticTarget) Logs(context.Context) (string, error)        { return "", nil }
func (s staticTarget) ExternalHost(context.Context) (string, error) { return "127.0.0.1", nil }
func (s staticTarget) ExternalPort(context.Context) (int, error)    { return 0, nil }

func (s staticTarget) Exec(context.Context, ...string) (ExecResult, error) {
	return ExecResult{}, nil
}

func TestRegisterMetrics_Twice(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()

	require.NoError(t, RegisterMetrics(registry))
	require.NoError(t, RegisterMetrics(registry))
}

//nolint:paralleltest // Mutates the package logger.
func TestInstrumentation_CountsAttemptsAndLogsFailures(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	SetLogger(logger)
	t.Cleanup(func() { SetLogger(nil) })

	before := testutil.ToFloat64(attemptsTotal.WithLabelValues("readiness-probe"))

	err := ForReadinessProbe().
		WithTimeout(60*time.Millisecond).
		WithPollInterval(20*time.Millisecond).
		WaitUntilReady(context.Background(), staticTarget{})
	require.Error(t, err)

	after := testutil.ToFloat64(attemptsTotal.WithLabelValues("readiness-probe"))
	assert.GreaterOrEqual(t, after-before, float64(2))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "wait failed", entry.Message)
	assert.Equal(t, "readiness-probe", entry.Data["strategy"])
	assert.Equal(t, "static", entry.Data["target"])

	hook.Reset()

	require.NoError(t, ForReadinessProbe().WaitUntilReady(context.Background(), staticTarget{ready: true}))

	entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "target ready", entry.Message)
}

func TestResultOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ready", resultOf(nil))
	assert.Equal(t, "timeout", resultOf(&Error{Kind: KindTimeout}))
	assert.Equal(t, "interrupted", resultOf(&Error{Kind: KindInterrupted}))
	assert.Equal(t, "timeout", resultOf(errors.New("boom")))
}

func TestTruncateAndTail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "...def", tail("abcdef", 3))
	// "é" is two bytes; neither helper may split it.
	assert.Equal(t, "a...", truncate("aéb", 2))
	assert.Equal(t, "...b", tail("aéb", 2))
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.235s", formatDuration(1234567*time.Microsecond))
	assert.Equal(t, "1.5ms", formatDuration(1500*time.Microsecond+400*time.Nanosecond))
}
