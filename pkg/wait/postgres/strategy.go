package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/lib/pq"
)

// ReadyLogLine is logged by the server each time it starts accepting connections.
const ReadyLogLine = "database system is ready to accept connections"

const (
	defaultTimeout      = time.Minute
	defaultPollInterval = 500 * time.Millisecond
	// readyLogOccurrences accounts for the restart after init scripts ran.
	readyLogOccurrences = 2
)

// Target is a wait.Target backed by a PostgreSQL server.
type Target interface {
	wait.Target
	// DSN returns a lib/pq connection string that reaches the server from the test process.
	DSN(ctx context.Context) (string, error)
}

// Strategy waits until a PostgreSQL server accepts queries.
type Strategy struct {
	timeout      time.Duration
	pollInterval time.Duration
	ping         func(ctx context.Context, dsn string) error
}

// New returns a Strategy with a one minute timeout and a 500ms poll interval.
func New() Strategy {
	return Strategy{
		timeout:      defaultTimeout,
		pollInterval: defaultPollInterval,
		ping:         ping,
	}
}

// Timeout implements wait.Strategy.
func (s Strategy) Timeout() time.Duration {
	return s.timeout
}

// PollInterval implements wait.Strategy.
func (s Strategy) PollInterval() time.Duration {
	return s.pollInterval
}

// WithTimeout implements wait.Strategy.
func (s Strategy) WithTimeout(timeout time.Duration) wait.Strategy {
	s.timeout = timeout

	return s
}

// WithPollInterval implements wait.Strategy.
func (s Strategy) WithPollInterval(interval time.Duration) wait.Strategy {
	s.pollInterval = interval

	return s
}

// WaitUntilReady implements wait.Strategy. target must implement Target.
func (s Strategy) WaitUntilReady(ctx context.Context, target wait.Target) error {
	server, ok := target.(Target)
	if !ok {
		return fmt.Errorf("%w: PostgreSQL readiness needs a connection string, %q (%T) does not provide one",
			wait.ErrUnsupportedTarget, target.Name(), target)
	}

	return s.steps(server).WaitUntilReady(ctx, server)
}

func (s Strategy) steps(server Target) wait.Strategy {
	logs := wait.MustForLogMessageTimes(regexp.QuoteMeta(ReadyLogLine), readyLogOccurrences)

	query := wait.MustForCondition("SELECT 1", func(ctx context.Context, _ wait.Target) (bool, error) {
		dsn, err := server.DSN(ctx)
		if err != nil {
			return false, fmt.Errorf("resolve connection string: %w", err)
		}

		if err := s.ping(ctx, dsn); err != nil {
			return false, err
		}

		return true, nil
	})

	return wait.MustAllOf(wait.ForReadinessProbe(), logs, query).
		WithTimeout(s.timeout).
		WithPollInterval(s.pollInterval)
}

func (s Strategy) String() string {
	return fmt.Sprintf("PostgreSQL[timeout=%s, pollInterval=%s]", s.timeout, s.pollInterval)
}

func ping(ctx context.Context, dsn string) error {
	connector, err := pq.NewConnector(dsn)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	db := sql.OpenDB(connector)
	defer func() { _ = db.Close() }()

	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("SELECT 1: %w", err)
	}

	return nil
}

var _ wait.Strategy = Strategy{}
