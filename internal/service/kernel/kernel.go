package kernel

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/aifiles-notebook/internal/executor"
	"github.com/oshokin/aifiles-notebook/internal/logger"
)

// jupyterProcessPrefix matches jupyter, jupyter-notebook, jupyter-lab and friends.
const jupyterProcessPrefix = "jupyter"

// ProcessLister returns a snapshot of the process table.
type ProcessLister func() ([]ps.Process, error)

// Registrar installs a kernel spec for the current user.
type Registrar struct {
	runner    executor.Runner
	python    string
	out       io.Writer
	processes ProcessLister
}

// Option customizes a Registrar.
type Option func(*Registrar)

// WithProcessLister replaces the process table source.
func WithProcessLister(lister ProcessLister) Option {
	return func(r *Registrar) {
		r.processes = lister
	}
}

// New creates a Registrar that reports its outcome to out.
func New(runner executor.Runner, python string, out io.Writer, opts ...Option) *Registrar {
	r := &Registrar{
		runner:    runner,
		python:    python,
		out:       out,
		processes: ps.Processes,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Args returns the ipykernel arguments registering name for the current user.
func Args(name string) []string {
	return []string{"-m", "ipykernel", "install", "--user", "--name=" + name}
}

// Register runs the registration once and reports whether the tool exited cleanly.
// Whether the kernel directory actually landed on disk is not checked beyond the exit status.
// Nothing is printed when the context was cancelled while the tool ran.
func (r *Registrar) Register(ctx context.Context, name string) error {
	ctx = logger.WithName(ctx, "kernel")

	logger.DebugKV(ctx, "Registering Jupyter kernel", "kernel", name, "python", r.python)

	if err := r.runner.Run(ctx, r.python, Args(name)...); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("register kernel %s: %w", name, ctx.Err())
		}

		logger.DebugKV(ctx, "Kernel registration failed",
			"kernel", name,
			"exit_code", executor.ExitCode(err),
			"error", err)

		_, _ = fmt.Fprintln(r.out, "✗ Failed to setup Jupyter kernel")

		return fmt.Errorf("register kernel %s: %w", name, err)
	}

	_, _ = fmt.Fprintln(r.out, "✓ Jupyter kernel setup complete")

	r.noticeRunningServers(ctx, name)

	return nil
}

// RunningServers returns the PIDs of Jupyter processes other than this one.
func (r *Registrar) RunningServers() ([]int, error) {
	processes, err := r.processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	self := os.Getpid()

	var pids []int

	for _, p := range processes {
		if p.Pid() == self {
			continue
		}

		if strings.HasPrefix(strings.ToLower(p.Executable()), jupyterProcessPrefix) {
			pids = append(pids, p.Pid())
		}
	}

	return pids, nil
}

func (r *Registrar) noticeRunningServers(ctx context.Context, name string) {
	pids, err := r.RunningServers()
	if err != nil {
		logger.DebugKV(ctx, "Unable to scan for running Jupyter servers", "error", err)
		return
	}

	if len(pids) == 0 {
		return
	}

	logger.InfoKV(ctx, "Jupyter is already running; reload the notebook page to see the new kernel",
		"kernel", name,
		"pids", pids)
}
