package defaults

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/devantler-tech/testpods/pkg/cluster"
	"github.com/devantler-tech/testpods/pkg/namespace"
	"github.com/sirupsen/logrus"
)

// ClusterSupplier returns the cluster workloads are created in.
type ClusterSupplier func(ctx context.Context) (*cluster.Cluster, error)

// Discoverer finds a cluster when no supplier is configured.
type Discoverer func(ctx context.Context) (*cluster.Cluster, error)

// StaticCluster returns a ClusterSupplier that always returns c.
func StaticCluster(c *cluster.Cluster) ClusterSupplier {
	return func(context.Context) (*cluster.Cluster, error) {
		return c, nil
	}
}

// MinikubeCluster returns a ClusterSupplier connecting to a minikube profile.
func MinikubeCluster(profile string) ClusterSupplier {
	return func(context.Context) (*cluster.Cluster, error) {
		return cluster.Minikube(profile)
	}
}

//nolint:gochecknoglobals // Global defaults are process-wide by definition.
var (
	globalCluster   atomic.Pointer[ClusterSupplier]
	globalNamespace atomic.Pointer[namespace.Supplier]
	globalShared    atomic.Pointer[namespace.Namespace]
	discoverer      atomic.Pointer[Discoverer]
)

// SetGlobalClusterSupplier sets the cluster supplier used where no scope entry is set.
// A nil supplier removes the global entry.
func SetGlobalClusterSupplier(supplier ClusterSupplier) {
	if supplier == nil {
		globalCluster.Store(nil)

		return
	}

	globalCluster.Store(&supplier)
}

// SetGlobalNamespaceNameSupplier sets the namespace name supplier used where
// no scope entry is set. A nil supplier removes the global entry.
func SetGlobalNamespaceNameSupplier(supplier namespace.Supplier) {
	if supplier == nil {
		globalNamespace.Store(nil)

		return
	}

	globalNamespace.Store(&supplier)
}

// SetGlobalSharedNamespace sets the namespace all workloads share where no
// scope entry is set. A nil namespace removes the global entry.
func SetGlobalSharedNamespace(ns *namespace.Namespace) {
	globalShared.Store(ns)
}

// ClearGlobalDefaults removes all global entries. Scope entries are unaffected.
func ClearGlobalDefaults() {
	globalCluster.Store(nil)
	globalNamespace.Store(nil)
	globalShared.Store(nil)
}

// SetClusterDiscoverer replaces the fallback used when no cluster supplier is
// configured. A nil discoverer restores cluster.Discover.
func SetClusterDiscoverer(discover Discoverer) {
	if discover == nil {
		discoverer.Store(nil)

		return
	}

	discoverer.Store(&discover)
}

// HasClusterConfigured reports whether a scope or global cluster supplier is
// set. It never triggers discovery.
func HasClusterConfigured(ctx context.Context) bool {
	if s := scopeFrom(ctx); s != nil && s.cluster != nil {
		return true
	}

	return globalCluster.Load() != nil
}

// ResolveCluster returns the cluster that applies to ctx.
func ResolveCluster(ctx context.Context) (*cluster.Cluster, error) {
	supplier := clusterSupplier(ctx)
	if supplier == nil {
		logrus.Debug("no cluster configured, discovering one")

		supplier = ClusterSupplier(currentDiscoverer())
	}

	resolved, err := supplier(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve cluster: %w", err)
	}

	return resolved, nil
}

// ResolveNamespaceName returns the namespace name that applies to ctx. Each
// call invokes the supplier, so generated names differ between calls.
func ResolveNamespaceName(ctx context.Context) string {
	if s := scopeFrom(ctx); s != nil && s.namespace != nil {
		return s.namespace()
	}

	if supplier := globalNamespace.Load(); supplier != nil {
		return (*supplier)()
	}

	return namespace.Generate()
}

// SharedNamespace returns the shared namespace that applies to ctx, or nil.
func SharedNamespace(ctx context.Context) *namespace.Namespace {
	if s := scopeFrom(ctx); s != nil && s.shared != nil {
		return s.shared
	}

	return globalShared.Load()
}

func clusterSupplier(ctx context.Context) ClusterSupplier {
	if s := scopeFrom(ctx); s != nil && s.cluster != nil {
		return s.cluster
	}

	if supplier := globalCluster.Load(); supplier != nil {
		return *supplier
	}

	return nil
}

func currentDiscoverer() Discoverer {
	if discover := discoverer.Load(); discover != nil {
		return *discover
	}

	return cluster.Discover
}
