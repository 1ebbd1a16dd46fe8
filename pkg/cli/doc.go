// Package cli groups the command-line surface of testpods.
//
//   - cli/cmd: the cobra command tree (root, wait, discover)
//   - cli/parallel: bounded concurrent execution of per-pod waits
package cli
