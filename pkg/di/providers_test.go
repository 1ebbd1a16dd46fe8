package di_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/testpods/pkg/cluster"
	"github.com/devantler-tech/testpods/pkg/defaults"
	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_ProvidesDependencies(t *testing.T) {
	t.Parallel()

	err := di.NewRuntime().Invoke(func(injector di.Injector) error {
		tmr, resolveErr := di.ResolveTimer(injector)
		require.NoError(t, resolveErr)
		assert.NotNil(t, tmr)

		logger, resolveErr := di.ResolveLogger(injector)
		require.NoError(t, resolveErr)
		assert.NotNil(t, logger)

		supplier, resolveErr := di.ResolveClusterSupplier(injector)
		require.NoError(t, resolveErr)
		assert.NotNil(t, supplier)

		return nil
	})

	require.NoError(t, err)
}

func TestClusterSupplierModule_Overrides(t *testing.T) {
	t.Parallel()

	want := &cluster.Cluster{Name: "fake"}

	check := func(injector di.Injector) error {
		supplier, resolveErr := di.ResolveClusterSupplier(injector)
		require.NoError(t, resolveErr)

		got, supplyErr := supplier(context.Background())
		require.NoError(t, supplyErr)
		assert.Same(t, want, got)

		return nil
	}

	module := di.ClusterSupplierModule(defaults.StaticCluster(want))

	require.NoError(t, di.NewRuntime().Invoke(check, module))
	require.NoError(t, di.NewRuntime(module).Invoke(check))
}
