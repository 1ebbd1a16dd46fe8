// Package client holds helpers shared by the Kubernetes-facing packages.
//
// The netretry subpackage classifies transient API server errors so callers
// can retry them.
package client
