// Package defaults resolves which cluster and namespace test workloads use.
//
// Defaults live in two places. A scope is carried by a context.Context and
// belongs to one unit of work, typically a test; it is set with the With
// functions and dropped with Clear. Global defaults are process-wide and
// apply wherever no scope entry is set.
//
// Resolution order for the cluster is: scope entry, global entry, then
// auto-discovery (cluster.Discover). For the namespace name it is: scope
// entry, global entry, then namespace.Generate.
//
// Scopes are immutable. Deriving a context never changes the parent, so a
// goroutine started with a context keeps the defaults it was started with
// regardless of later changes in the parent, and vice versa:
//
//	ctx = defaults.WithClusterSupplier(ctx, defaults.StaticCluster(c))
//	done := defaults.Go(ctx, func(ctx context.Context) {
//		c, err := defaults.ResolveCluster(ctx) // sees c
//		...
//	})
//	ctx = defaults.Clear(ctx) // the goroutine still sees c
//	<-done
package defaults
