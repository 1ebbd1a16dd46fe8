package defaults

import (
	"context"

	"github.com/devantler-tech/testpods/pkg/namespace"
)

// scope is the defaults entry of one unit of work. It is never modified after
// it has been stored in a context.
type scope struct {
	cluster   ClusterSupplier
	namespace namespace.Supplier
	shared    *namespace.Namespace
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)

	return s
}

// derive stores a modified copy of the scope of ctx.
func derive(ctx context.Context, modify func(*scope)) context.Context {
	next := &scope{}
	if s := scopeFrom(ctx); s != nil {
		*next = *s
	}

	modify(next)

	return context.WithValue(ctx, scopeKey{}, next)
}

// WithClusterSupplier returns a context whose scope uses supplier for the cluster.
func WithClusterSupplier(ctx context.Context, supplier ClusterSupplier) context.Context {
	return derive(ctx, func(s *scope) { s.cluster = supplier })
}

// WithNamespaceNameSupplier returns a context whose scope uses supplier for namespace names.
func WithNamespaceNameSupplier(ctx context.Context, supplier namespace.Supplier) context.Context {
	return derive(ctx, func(s *scope) { s.namespace = supplier })
}

// WithSharedNamespace returns a context whose scope shares ns between workloads.
func WithSharedNamespace(ctx context.Context, ns *namespace.Namespace) context.Context {
	return derive(ctx, func(s *scope) { s.shared = ns })
}

// Clear returns a context without a scope entry. Global defaults and contexts
// derived from ctx earlier, including those of running goroutines, keep what
// they had.
func Clear(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeKey{}, (*scope)(nil))
}

// ClearThreadLocal returns a context without a scope entry.
//
// Deprecated: Use Clear.
func ClearThreadLocal(ctx context.Context) context.Context {
	return Clear(ctx)
}

// Go runs fn in a new goroutine with the scope of ctx as it is now. The
// returned channel is closed when fn returns.
func Go(ctx context.Context, fn func(ctx context.Context)) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		fn(ctx)
	}()

	return done
}
