// Package parallel runs independent waits concurrently with a bounded number
// of goroutines.
package parallel
