package namespace

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/devantler-tech/testpods/pkg/k8s"
	"k8s.io/client-go/kubernetes"
)

// ManagedByLabel marks namespaces created by this module.
const ManagedByLabel = "app.kubernetes.io/managed-by"

// ErrNoClient is returned when a Namespace has no Kubernetes client.
var ErrNoClient = errors.New("namespace has no kubernetes client")

// Namespace is a namespace that several workloads share. Create is
// idempotent and Close deletes the namespace only after a successful Create.
type Namespace struct {
	name   string
	client kubernetes.Interface

	mu      sync.Mutex
	created bool
}

// New returns a Namespace named name. An empty name is replaced by Generate().
func New(client kubernetes.Interface, name string) *Namespace {
	if name == "" {
		name = Generate()
	}

	return &Namespace{name: name, client: client}
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// Created reports whether Create succeeded and Close has not run since.
func (n *Namespace) Created() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.created
}

// Create ensures the namespace exists.
func (n *Namespace) Create(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.created {
		return nil
	}

	if n.client == nil {
		return ErrNoClient
	}

	err := k8s.EnsureNamespace(ctx, n.client, n.name, map[string]string{ManagedByLabel: Prefix})
	if err != nil {
		return fmt.Errorf("namespace %s: %w", n.name, err)
	}

	n.created = true

	return nil
}

// Close deletes the namespace if Create succeeded.
func (n *Namespace) Close(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.created {
		return nil
	}

	err := k8s.DeleteNamespace(ctx, n.client, n.name)
	if err != nil {
		return fmt.Errorf("namespace %s: %w", n.name, err)
	}

	n.created = false

	return nil
}
