package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner starts a program and waits for it to exit.
// A nil error means the program exited with status 0.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Exec runs programs with os/exec.
type Exec struct {
	// stdout receives the child's standard output.
	stdout io.Writer
	// stderr receives the child's standard error.
	stderr io.Writer
	// stdin feeds the child's standard input.
	stdin io.Reader
	// env is appended to the inherited environment.
	env []string
}

// Option customizes an Exec.
type Option func(*Exec)

// WithOutput redirects the child's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(e *Exec) {
		e.stdout = stdout
		e.stderr = stderr
	}
}

// WithStdin sets the child's standard input.
func WithStdin(stdin io.Reader) Option {
	return func(e *Exec) {
		e.stdin = stdin
	}
}

// WithEnv appends KEY=VALUE pairs to the inherited environment.
func WithEnv(env ...string) Option {
	return func(e *Exec) {
		e.env = append(e.env, env...)
	}
}

// NewExec returns an Exec that inherits the operator's terminal by default.
func NewExec(opts ...Option) *Exec {
	e := &Exec{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run starts name with args and blocks until it exits.
func (e *Exec) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Stdin = e.stdin

	if len(e.env) > 0 {
		cmd.Env = append(cmd.Environ(), e.env...)
	}

	if err := cmd.Run(); err != nil {
		return &CommandError{
			Command: commandLine(name, args),
			Err:     err,
		}
	}

	return nil
}

// CommandError reports a program that could not be started or exited non-zero.
type CommandError struct {
	// Command is the command line as it was invoked.
	Command string
	// Err is the underlying error from os/exec.
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("run %q: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit status from err.
// It returns 0 for nil and -1 when the program never produced a status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return -1
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}

	return name + " " + strings.Join(args, " ")
}
