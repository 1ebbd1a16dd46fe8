package wait_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errNotYet = errors.New("not yet")

// fakeTarget is a wait.Target whose behaviour is driven by function fields.
type fakeTarget struct {
	name     string
	ready    func(ctx context.Context) (bool, error)
	logs     func() (string, error)
	host     string
	port     int
	portErr  error
	attempts atomic.Int32
}

func (f *fakeTarget) Name() string {
	if f.name == "" {
		return "fake"
	}

	return f.name
}

func (f *fakeTarget) IsReady(ctx context.Context) (bool, error) {
	f.attempts.Add(1)

	if f.ready == nil {
		return false, nil
	}

	return f.ready(ctx)
}

func (f *fakeTarget) Logs(context.Context) (string, error) {
	f.attempts.Add(1)

	if f.logs == nil {
		return "", nil
	}

	return f.logs()
}

func (f *fakeTarget) ExternalHost(context.Context) (string, error) {
	if f.host == "" {
		return "127.0.0.1", nil
	}

	return f.host, nil
}

func (f *fakeTarget) ExternalPort(context.Context) (int, error) {
	return f.port, f.portErr
}

func (f *fakeTarget) Exec(context.Context, ...string) (wait.ExecResult, error) {
	return wait.ExecResult{}, errNotYet
}

// mockTarget is a testify mock of wait.Target for call-level assertions.
type mockTarget struct {
	mock.Mock
}

func (m *mockTarget) Name() string {
	return "mock"
}

func (m *mockTarget) IsReady(ctx context.Context) (bool, error) {
	args := m.Called(ctx)

	return args.Bool(0), args.Error(1)
}

func (m *mockTarget) Logs(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *mockTarget) ExternalHost(ctx context.Context) (string, error) {
	args := m.Called(ctx)

	return args.String(0), args.Error(1)
}

func (m *mockTarget) ExternalPort(ctx context.Context) (int, error) {
	args := m.Called(ctx)

	return args.Int(0), args.Error(1)
}

func (m *mockTarget) Exec(ctx context.Context, argv ...string) (wait.ExecResult, error) {
	args := m.Called(ctx, argv)

	result, _ := args.Get(0).(wait.ExecResult)

	return result, args.Error(1)
}

// readyAfter returns a readiness func that reports ready once d has passed.
func readyAfter(d time.Duration) func(context.Context) (bool, error) {
	start := time.Now()

	return func(context.Context) (bool, error) {
		if time.Since(start) >= d {
			return true, nil
		}

		return false, errNotYet
	}
}

// closedPort returns a local TCP port that nothing listens on.
func closedPort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	_, rawPort, err := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, err)
	require.NoError(t, listener.Close())

	port, err := strconv.Atoi(rawPort)
	require.NoError(t, err)

	return port
}

// openPort starts a TCP listener and returns its port.
func openPort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() { _ = listener.Close() })

	go func() {
		for {
			conn, acceptErr := listener.Accept()
			if acceptErr != nil {
				return
			}

			_ = conn.Close()
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port //nolint:forcetypeassert // tcp listener
}

// recordingStrategy is a wait.Strategy that records the configuration it was run with.
type recordingStrategy struct {
	name     string
	timeout  time.Duration
	interval time.Duration
	runs     *[]recordedRun
	result   func(ctx context.Context, timeout time.Duration) error
}

type recordedRun struct {
	timeout  time.Duration
	interval time.Duration
}

func newRecordingStrategy(name string, result func(context.Context, time.Duration) error) recordingStrategy {
	return recordingStrategy{
		name:     name,
		timeout:  time.Minute,
		interval: time.Second,
		runs:     &[]recordedRun{},
		result:   result,
	}
}

func (r recordingStrategy) WaitUntilReady(ctx context.Context, _ wait.Target) error {
	*r.runs = append(*r.runs, recordedRun{timeout: r.timeout, interval: r.interval})

	if r.result == nil {
		return nil
	}

	return r.result(ctx, r.timeout)
}

func (r recordingStrategy) WithTimeout(timeout time.Duration) wait.Strategy {
	r.timeout = timeout

	return r
}

func (r recordingStrategy) WithPollInterval(interval time.Duration) wait.Strategy {
	r.interval = interval

	return r
}

func (r recordingStrategy) Timeout() time.Duration      { return r.timeout }
func (r recordingStrategy) PollInterval() time.Duration { return r.interval }
func (r recordingStrategy) String() string              { return r.name }
