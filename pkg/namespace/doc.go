// Package namespace generates Kubernetes namespace names for test workloads
// and manages namespaces shared by several of them.
//
// Generated names have the form testpods-<context>-<suffix>, where the
// optional context is sanitized to a DNS label and the suffix is five random
// characters. Names never exceed 63 characters.
package namespace
