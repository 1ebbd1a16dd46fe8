// Package pod implements wait.Target for workloads running in a Kubernetes cluster.
//
// A Handle addresses one pod by name or label selector. Readiness comes from
// the pod's Ready condition, logs from the pod log endpoint, command execution
// from the exec subresource, and external addresses from NodePort services
// reachable on the cluster's access host.
package pod
