// Package envvar expands ${VAR} and ${VAR:-default} placeholders in plan files
// and other text read by the testpods CLI.
package envvar
