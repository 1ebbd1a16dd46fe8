package di_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/devantler-tech/testpods/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errHandlerExecutionFailed = errors.New("handler execution failed")

func TestResolveTimer_Success(t *testing.T) {
	t.Parallel()

	injector := do.New()
	do.Provide(injector, func(do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	resolvedTimer, err := di.ResolveTimer(injector)
	require.NoError(t, err)
	require.NotNil(t, resolvedTimer)

	resolvedTimer.Start()
	total, stage := resolvedTimer.GetTiming()
	assert.GreaterOrEqual(t, total, stage)
}

func TestResolvers_Missing(t *testing.T) {
	t.Parallel()

	injector := do.New()

	_, err := di.ResolveTimer(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve timer dependency")

	_, err = di.ResolveLogger(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve logger dependency")

	_, err = di.ResolveClusterSupplier(injector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve cluster supplier dependency")
}

func TestWithTimer_Success(t *testing.T) {
	t.Parallel()

	injector := do.New()
	do.Provide(injector, func(do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	handlerCalled := false
	handler := func(_ *cobra.Command, _ di.Injector, tmr timer.Timer) error {
		handlerCalled = true

		tmr.Start()

		return nil
	}

	err := di.WithTimer(handler)(&cobra.Command{}, injector)

	require.NoError(t, err)
	assert.True(t, handlerCalled)
}

func TestWithTimer_HandlerError(t *testing.T) {
	t.Parallel()

	injector := do.New()
	do.Provide(injector, func(do.Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	handler := func(*cobra.Command, di.Injector, timer.Timer) error {
		return fmt.Errorf("handler failed: %w", errHandlerExecutionFailed)
	}

	err := di.WithTimer(handler)(&cobra.Command{}, injector)

	require.ErrorIs(t, err, errHandlerExecutionFailed)
}

func TestWithTimer_TimerResolveError(t *testing.T) {
	t.Parallel()

	handler := func(*cobra.Command, di.Injector, timer.Timer) error {
		t.Fatal("handler must not run without a timer")

		return nil
	}

	err := di.WithTimer(handler)(&cobra.Command{}, do.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve timer dependency")
}
