// Package cmd provides the testpods command-line interface.
//
// The root command has two subcommands:
//   - wait: waits for pods to become ready using a strategy from flags or a plan file
//   - discover: shows which cluster testpods would use when none is configured
package cmd
