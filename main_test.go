package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunSafely_ReturnsRunnerExitCode(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	exitCode := runSafely([]string{"x"}, func(args []string) int {
		assert.Equal(t, []string{"x"}, args)

		return 3
	}, &errOut)

	assert.Equal(t, 3, exitCode)
	assert.Empty(t, errOut.String())
}

func TestRunSafely_RecoversPanics(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer

	exitCode := runSafely(nil, func([]string) int {
		panic("boom")
	}, &errOut)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, errOut.String(), "✗ panic recovered: boom")
}

func TestRunWithArgs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, runWithArgs([]string{"--version"}))
	assert.Equal(t, 1, runWithArgs([]string{"wait"}))
}
