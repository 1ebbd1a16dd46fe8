package wait

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/docker/go-connections/nat"
)

const (
	defaultPortTimeout        = time.Minute
	defaultPortPollInterval   = 500 * time.Millisecond
	defaultPortConnectTimeout = 5 * time.Second

	maxPort = 65535
)

// PortStrategy waits until a TCP connection to the target succeeds.
//
// Each attempt is bounded by the connect timeout, independent of the outer
// poll loop.
type PortStrategy struct {
	timing

	port           nat.Port
	connectTimeout time.Duration
}

func newPortStrategy(port int) (PortStrategy, error) {
	if err := validatePort(port); err != nil {
		return PortStrategy{}, err
	}

	return PortStrategy{
		timing:         timing{timeout: defaultPortTimeout, pollInterval: defaultPortPollInterval},
		port:           nat.Port(strconv.Itoa(port) + "/tcp"),
		connectTimeout: defaultPortConnectTimeout,
	}, nil
}

func validatePort(port int) error {
	if port < 1 || port > maxPort {
		return invalidf("port %d: must be between 1 and %d", port, maxPort)
	}

	return nil
}

func newPortStrategyFromSpec(spec string) (PortStrategy, error) {
	proto, rawPort := nat.SplitProtoPort(spec)
	if proto != "tcp" {
		return PortStrategy{}, invalidf("port %q: only tcp ports can be probed", spec)
	}

	port, err := nat.NewPort(proto, rawPort)
	if err != nil {
		return PortStrategy{}, invalidf("port %q: %v", spec, err)
	}

	strategy, err := newPortStrategy(port.Int())
	if err != nil {
		return PortStrategy{}, invalidf("port %q: not a valid port number", spec)
	}

	strategy.port = port

	return strategy, nil
}

// Port returns the workload port being probed.
func (s PortStrategy) Port() int {
	return s.port.Int()
}

// ConnectTimeout returns the per-attempt connect timeout.
func (s PortStrategy) ConnectTimeout() time.Duration {
	return s.connectTimeout
}

// WithConnectTimeout returns a copy with a different per-attempt connect timeout.
func (s PortStrategy) WithConnectTimeout(timeout time.Duration) PortStrategy {
	s.connectTimeout = timeout

	return s
}

// WaitUntilReady implements Strategy.
func (s PortStrategy) WaitUntilReady(ctx context.Context, target Target) error {
	var lastAddress string

	return run(ctx, target, probe{
		kind:        "port",
		description: fmt.Sprintf("port %s", s.port),
		timeout:     s.timeout,
		interval:    s.pollInterval,
		check: func(ctx context.Context) (bool, error) {
			address, err := externalAddress(ctx, target, s.port.Int())
			if err != nil {
				return false, err
			}

			lastAddress = address

			dialer := net.Dialer{Timeout: s.connectTimeout}

			conn, err := dialer.DialContext(ctx, s.port.Proto(), address)
			if err != nil {
				return false, fmt.Errorf("connect to %s: %w", address, err)
			}

			_ = conn.Close()

			return true, nil
		},
		detail: func() string {
			if lastAddress == "" {
				return "external address was never resolved"
			}

			return "last probed address: " + lastAddress
		},
	})
}

// WithTimeout implements Strategy.
func (s PortStrategy) WithTimeout(timeout time.Duration) Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements Strategy.
func (s PortStrategy) WithPollInterval(interval time.Duration) Strategy {
	s.pollInterval = interval

	return s
}

func (s PortStrategy) String() string {
	return fmt.Sprintf("Port[port=%s, timeout=%s]", s.port, formatDuration(s.timeout))
}

// externalAddress resolves the host:port the test process can reach port at.
func externalAddress(ctx context.Context, target Target, port int) (string, error) {
	host, err := target.ExternalHost(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve external host: %w", err)
	}

	externalPort, err := resolvePort(ctx, target, port)
	if err != nil {
		return "", fmt.Errorf("resolve external port for %d: %w", port, err)
	}

	return net.JoinHostPort(host, strconv.Itoa(externalPort)), nil
}
