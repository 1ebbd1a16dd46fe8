// Package postgres provides a readiness strategy for PostgreSQL workloads.
//
// The strategy waits for the workload's readiness signal, then for the server
// to log that it accepts connections twice (once for the init phase, once for
// the final start), and finally for a SELECT 1 to succeed over a lib/pq
// connection. All three steps share one timeout.
package postgres
