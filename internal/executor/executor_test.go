package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const helperEnv = "AIFILES_EXECUTOR_HELPER"

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		helperProcess()
	}

	goleak.VerifyTestMain(m)
}

// helperProcess stands in for an external program: it echoes its arguments
// and exits with the status given as the first argument.
func helperProcess() {
	args := os.Args[1:]
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}

	if len(args) > 0 {
		args = args[1:]
	}

	code := 0
	if len(args) > 0 {
		code, _ = strconv.Atoi(args[0])
	}

	fmt.Fprintf(os.Stdout, "args=%v\n", args)
	fmt.Fprintln(os.Stderr, "diagnostics")
	os.Exit(code)
}

func helperArgs(code int, extra ...string) []string {
	return append([]string{"-test.run=^$", "--", strconv.Itoa(code)}, extra...)
}

// TestExecRunSuccess runs a zero-exit program and checks streamed output.
func TestExecRunSuccess(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	runner := NewExec(WithOutput(&stdout, &stderr), WithStdin(nil), WithEnv(helperEnv+"=1"))

	err := runner.Run(context.Background(), os.Args[0], helperArgs(0, "install", "pandas")...)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "args=[0 install pandas]")
	require.Contains(t, stderr.String(), "diagnostics")
}

// TestExecRunNonZeroExit ensures exit statuses are surfaced through CommandError.
func TestExecRunNonZeroExit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	runner := NewExec(WithOutput(&out, &out), WithStdin(nil), WithEnv(helperEnv+"=1"))

	err := runner.Run(context.Background(), os.Args[0], helperArgs(3)...)
	require.Error(t, err)
	require.Equal(t, 3, ExitCode(err))

	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Contains(t, cmdErr.Command, os.Args[0])
}

// TestExecRunMissingProgram ensures a program that cannot start has no exit status.
func TestExecRunMissingProgram(t *testing.T) {
	t.Parallel()

	runner := NewExec(WithOutput(&bytes.Buffer{}, &bytes.Buffer{}), WithStdin(nil))

	err := runner.Run(context.Background(), "aifiles-definitely-not-installed")
	require.Error(t, err)
	require.Equal(t, -1, ExitCode(err))
	require.True(t, errors.Is(err, exec.ErrNotFound))
}

// TestExitCodeNil covers the success case.
func TestExitCodeNil(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ExitCode(nil))
	require.Equal(t, "python -m pip", commandLine("python", []string{"-m", "pip"}))
	require.Equal(t, "python", commandLine("python", nil))
}
