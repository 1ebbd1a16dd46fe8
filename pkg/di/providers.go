package di

import (
	"os"

	"github.com/devantler-tech/testpods/pkg/defaults"
	"github.com/devantler-tech/testpods/pkg/utils/timer"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// Dependency providers.

// NewRuntime constructs the runtime used by the root command.
// It registers the timer, the logger and the cluster supplier, then runs
// extra, which may override them.
func NewRuntime(extra ...Module) *Runtime {
	return New(append([]Module{
		provideTimer,
		provideLogger,
		provideClusterSupplier,
	}, extra...)...)
}

func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

func provideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

		return logger, nil
	})

	return nil
}

// provideClusterSupplier registers the supplier commands resolve the cluster
// with: the context's scope, then the global default, then discovery.
func provideClusterSupplier(i Injector) error {
	do.Provide(i, func(Injector) (defaults.ClusterSupplier, error) {
		return defaults.ResolveCluster, nil
	})

	return nil
}

// ClusterSupplierModule returns a module that overrides the cluster supplier.
func ClusterSupplierModule(supplier defaults.ClusterSupplier) Module {
	return func(i Injector) error {
		do.Override(i, func(Injector) (defaults.ClusterSupplier, error) {
			return supplier, nil
		})

		return nil
	}
}
