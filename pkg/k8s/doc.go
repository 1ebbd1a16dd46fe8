// Package k8s provides Kubernetes client configuration helpers shared by the
// cluster, namespace and pod packages.
//
// Key features:
//   - REST config building from kubeconfig files (LoadRESTConfig)
//   - Clientset creation (NewClientset)
//   - Kubeconfig context inspection (Contexts)
//   - Namespace creation and removal (EnsureNamespace, DeleteNamespace)
//   - DNS label sanitization (SanitizeToDNSLabel)
package k8s
