package cluster

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/devantler-tech/testpods/pkg/client/netretry"
	"github.com/devantler-tech/testpods/pkg/k8s"
	"github.com/siderolabs/go-retry/retry"
	"github.com/sirupsen/logrus"
)

const (
	defaultReachTimeout  = 10 * time.Second
	defaultReachInterval = time.Second
)

// Discoverer finds a reachable cluster among kubeconfig contexts.
type Discoverer struct {
	// Kubeconfig is the kubeconfig path. Empty uses the client-go defaults.
	Kubeconfig string
	// Contexts are tried in order before the current context.
	Contexts []string
	// Timeout bounds the reachability retries of each candidate.
	Timeout time.Duration
	// Interval separates reachability retries.
	Interval time.Duration
	// Connect builds a cluster for a context. Defaults to FromKubeconfig.
	Connect func(kubeconfig, context string) (*Cluster, error)
	Logger  logrus.FieldLogger
}

// NewDiscoverer returns a Discoverer trying the minikit and minikube profiles
// before the current context.
func NewDiscoverer() *Discoverer {
	return &Discoverer{
		Contexts: []string{DefaultProfile, "minikube"},
		Timeout:  defaultReachTimeout,
		Interval: defaultReachInterval,
		Connect:  FromKubeconfig,
		Logger:   logrus.StandardLogger(),
	}
}

// Discover returns the first reachable cluster using NewDiscoverer.
func Discover(ctx context.Context) (*Cluster, error) {
	return NewDiscoverer().Discover(ctx)
}

// Discover returns the first candidate context whose API server answers.
// Transient network errors are retried until Timeout; other errors move on to
// the next candidate.
func (d *Discoverer) Discover(ctx context.Context) (*Cluster, error) {
	candidates, err := d.candidates()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoClusterFound, err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: kubeconfig has no contexts", ErrNoClusterFound)
	}

	var errs []error

	for _, name := range candidates {
		cluster, connectErr := d.connect(ctx, name)
		if connectErr == nil {
			d.logger().WithField("context", name).Debug("discovered cluster")

			return cluster, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("discover cluster: %w", ctxErr)
		}

		d.logger().WithError(connectErr).WithField("context", name).Debug("cluster candidate unavailable")
		errs = append(errs, connectErr)
	}

	return nil, fmt.Errorf("%w: %w", ErrNoClusterFound, errors.Join(errs...))
}

func (d *Discoverer) candidates() ([]string, error) {
	names, current, err := k8s.Contexts(d.Kubeconfig)
	if err != nil {
		return nil, err
	}

	var candidates []string

	for _, name := range d.Contexts {
		if slices.Contains(names, name) && !slices.Contains(candidates, name) {
			candidates = append(candidates, name)
		}
	}

	if current != "" && !slices.Contains(candidates, current) {
		candidates = append(candidates, current)
	}

	return candidates, nil
}

func (d *Discoverer) connect(ctx context.Context, name string) (*Cluster, error) {
	connect := d.Connect
	if connect == nil {
		connect = FromKubeconfig
	}

	cluster, err := connect(d.Kubeconfig, name)
	if err != nil {
		return nil, err
	}

	err = retry.Constant(d.Timeout, retry.WithUnits(d.Interval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			_, versionErr := cluster.ServerVersion(ctx)
			if versionErr != nil && netretry.IsRetryable(versionErr) {
				return retry.ExpectedError(versionErr)
			}

			return versionErr
		})
	if err != nil {
		return nil, fmt.Errorf("context %q is not reachable: %w", name, err)
	}

	return cluster, nil
}

func (d *Discoverer) logger() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}

	return d.Logger
}
