// Package di wires the testpods CLI's dependencies with samber/do.
//
// A [Runtime] holds the modules that register providers. Each command
// invocation gets a fresh injector, so tests can swap a provider by passing
// an extra module to [Runtime.Invoke] or building their own Runtime.
package di
