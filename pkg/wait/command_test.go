package wait_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pgIsReady = []string{"pg_isready", "-U", "postgres"}

func TestCommand_ReadyAfterNonZeroExit(t *testing.T) {
	t.Parallel()

	target := &mockTarget{}
	target.On("Exec", mock.Anything, pgIsReady).
		Return(wait.ExecResult{ExitCode: 2, Stderr: "no response"}, nil).Twice()
	target.On("Exec", mock.Anything, pgIsReady).
		Return(wait.ExecResult{ExitCode: 0, Stdout: "accepting connections"}, nil).Once()

	err := wait.MustForCommand(pgIsReady...).
		WithTimeout(2*time.Second).
		WithPollInterval(10*time.Millisecond).
		WaitUntilReady(context.Background(), target)

	require.NoError(t, err)
	target.AssertNumberOfCalls(t, "Exec", 3)
}

func TestCommand_ExecErrorsAreRetried(t *testing.T) {
	t.Parallel()

	target := &mockTarget{}
	target.On("Exec", mock.Anything, []string{"true"}).
		Return(wait.ExecResult{}, errNotYet).Once()
	target.On("Exec", mock.Anything, []string{"true"}).
		Return(wait.ExecResult{}, nil).Once()

	err := wait.MustForCommand("true").
		WithTimeout(time.Second).
		WithPollInterval(10*time.Millisecond).
		WaitUntilReady(context.Background(), target)

	require.NoError(t, err)
	target.AssertExpectations(t)
}

func TestCommand_TimeoutReportsExitCodeAndOutput(t *testing.T) {
	t.Parallel()

	target := &mockTarget{}
	target.On("Exec", mock.Anything, []string{"false"}).
		Return(wait.ExecResult{ExitCode: 1, Stderr: strings.Repeat("e", 300), Stdout: "out"}, nil)

	err := wait.MustForCommand("false").
		WithTimeout(100*time.Millisecond).
		WithPollInterval(20*time.Millisecond).
		WaitUntilReady(context.Background(), target)

	require.Error(t, err)
	assert.True(t, wait.IsTimeout(err))

	message := err.Error()
	assert.Contains(t, message, `command "false"`)
	assert.Contains(t, message, "last exit code: 1")
	assert.Contains(t, message, "stderr: "+strings.Repeat("e", 200)+"...")
	assert.NotContains(t, message, strings.Repeat("e", 201))
	assert.Contains(t, message, "stdout: out")
}

func TestCommand_NeverRan(t *testing.T) {
	t.Parallel()

	err := wait.MustForCommand("ls").
		WithTimeout(50*time.Millisecond).
		WithPollInterval(10*time.Millisecond).
		WaitUntilReady(context.Background(), &fakeTarget{})

	require.Error(t, err)
	require.ErrorIs(t, err, errNotYet)
	assert.Contains(t, err.Error(), "command never ran")
}
