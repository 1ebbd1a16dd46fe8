package di

import (
	"fmt"

	"github.com/devantler-tech/testpods/pkg/defaults"
	"github.com/devantler-tech/testpods/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Dependency resolvers.

// ResolveTimer retrieves the timer dependency from the injector.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveLogger retrieves the logger dependency from the injector.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveClusterSupplier retrieves the cluster supplier dependency from the injector.
func ResolveClusterSupplier(injector Injector) (defaults.ClusterSupplier, error) {
	supplier, err := do.Invoke[defaults.ClusterSupplier](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve cluster supplier dependency: %w", err)
	}

	return supplier, nil
}

// Handler decorators.

// WithTimer decorates a handler to resolve the timer dependency first.
func WithTimer(
	handler func(cmd *cobra.Command, injector Injector, tmr timer.Timer) error,
) func(cmd *cobra.Command, injector Injector) error {
	return func(cmd *cobra.Command, injector Injector) error {
		tmr, err := ResolveTimer(injector)
		if err != nil {
			return err
		}

		return handler(cmd, injector, tmr)
	}
}
