package cluster

import (
	"context"
	"fmt"
	"net/url"

	"github.com/devantler-tech/testpods/pkg/k8s"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// DefaultProfile is the minikube profile tried first by Discover.
const DefaultProfile = "minikit"

// Cluster is a connection to a Kubernetes cluster.
type Cluster struct {
	// Name is the kubeconfig context the cluster was loaded from.
	Name   string
	Client kubernetes.Interface
	// RESTConfig is nil for clusters built around a fake clientset.
	RESTConfig *rest.Config
	// AccessHost is the host the test process reaches NodePort services on.
	AccessHost string
}

// FromKubeconfig connects to context in kubeconfig. Empty values select the
// client-go defaults (KUBECONFIG or ~/.kube/config, and its current context).
func FromKubeconfig(kubeconfig, context string) (*Cluster, error) {
	restConfig, err := k8s.LoadRESTConfig(kubeconfig, context)
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %w", context, err)
	}

	clientset, err := k8s.NewClientset(restConfig)
	if err != nil {
		return nil, fmt.Errorf("cluster %q: %w", context, err)
	}

	name := context
	if name == "" {
		_, name, _ = k8s.Contexts(kubeconfig)
	}

	return &Cluster{
		Name:       name,
		Client:     clientset,
		RESTConfig: restConfig,
		AccessHost: accessHost(restConfig.Host),
	}, nil
}

// Minikube connects to the minikube profile of the given name. minikube names
// the kubeconfig context after the profile.
func Minikube(profile string) (*Cluster, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	return FromKubeconfig("", profile)
}

// ServerVersion asks the API server for its version, which doubles as a
// reachability check.
func (c *Cluster) ServerVersion(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	info, err := c.Client.Discovery().ServerVersion()
	if err != nil {
		return "", fmt.Errorf("cluster %q: server version: %w", c.Name, err)
	}

	return info.GitVersion, nil
}

func (c *Cluster) String() string {
	return c.Name
}

// accessHost extracts the host of an API server URL. Local clusters such as
// minikube serve NodePorts on the same address as the API server.
func accessHost(server string) string {
	parsed, err := url.Parse(server)
	if err != nil || parsed.Hostname() == "" {
		return "127.0.0.1"
	}

	return parsed.Hostname()
}
