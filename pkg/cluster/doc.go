// Package cluster connects to the Kubernetes cluster test workloads run in.
//
// A Cluster bundles a clientset with the host the test process uses to reach
// exposed services. Discover finds a running local cluster when none was
// configured explicitly.
package cluster
