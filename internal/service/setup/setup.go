package setup

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oshokin/aifiles-notebook/internal/config"
	"github.com/oshokin/aifiles-notebook/internal/executor"
	"github.com/oshokin/aifiles-notebook/internal/interpreter"
	"github.com/oshokin/aifiles-notebook/internal/logger"
	"github.com/oshokin/aifiles-notebook/internal/service/installer"
	"github.com/oshokin/aifiles-notebook/internal/service/kernel"
)

// bannerWidth is the width of the rule around the closing instructions.
const bannerWidth = 50

// Options contains inputs for the setup entry point.
type Options struct {
	// ConfigPath is an optional settings file; a missing file means defaults.
	ConfigPath string
	// LogLevel overrides the level from the settings when not empty.
	LogLevel string
	// Stdout receives status lines and the summary. Defaults to os.Stdout.
	Stdout io.Writer
	// Runner executes external programs. Defaults to executor.NewExec.
	Runner executor.Runner
	// KernelOptions customize the kernel registrar.
	KernelOptions []kernel.Option
}

// Report summarizes a setup run.
type Report struct {
	// Python is the interpreter that was used.
	Python string
	// Installed lists packages whose installation succeeded, in order.
	Installed []string
	// Failed lists packages whose installation failed, in order.
	Failed []string
	// KernelRegistered is true when the kernel registration exited cleanly.
	KernelRegistered bool
	// Interrupted is true when the run was cancelled before finishing.
	Interrupted bool
}

// Setup runs the installation phases against a fixed configuration.
type Setup struct {
	cfg           *config.Config
	runner        executor.Runner
	out           io.Writer
	python        string
	kernelOptions []kernel.Option
}

// Run loads settings and performs a full setup. It never fails: invalid
// settings fall back to the defaults and step failures are only reported.
func Run(ctx context.Context, opts *Options) *Report {
	ctx = logger.WithName(ctx, "aifiles-setup")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		logger.WarnKV(ctx, "Using default settings", "config", opts.ConfigPath, "error", err)

		cfg = config.Default()
	}

	applyLogLevel(ctx, opts.LogLevel, cfg.LogLevel)

	python, err := interpreter.Resolve(cfg.Interpreter)
	if err != nil && cfg.Interpreter != "" {
		logger.WarnKV(ctx, "Configured Python interpreter not found, detecting the active one",
			"interpreter", cfg.Interpreter,
			"error", err)

		python, err = interpreter.Resolve("")
	}

	if err != nil {
		logger.WarnKV(ctx, "Python interpreter not resolved, trying fallback",
			"fallback", interpreter.Fallback,
			"error", err)

		python = interpreter.Fallback
	}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	runner := opts.Runner
	if runner == nil {
		runner = executor.NewExec()
	}

	return New(cfg, runner, python, out, opts.KernelOptions...).Run(ctx)
}

// New creates a Setup with an already resolved interpreter.
func New(cfg *config.Config, runner executor.Runner, python string, out io.Writer, opts ...kernel.Option) *Setup {
	return &Setup{
		cfg:           cfg,
		runner:        runner,
		out:           out,
		python:        python,
		kernelOptions: opts,
	}
}

// Run installs packages, registers the kernel and prints the summary, in that order.
// Cancelling ctx ends the run with a single interruption line instead of the summary.
func (s *Setup) Run(ctx context.Context) *Report {
	logger.DebugKV(ctx, "Starting setup",
		"python", s.python,
		"packages", s.cfg.Packages,
		"kernel", s.cfg.KernelName)

	_, _ = fmt.Fprintln(s.out, "Setting up AI File Sorter notebook environment...")

	report := &Report{Python: s.python}

	result, err := installer.New(s.runner, s.python, s.out).Install(ctx, s.cfg.Packages)
	if err != nil {
		logger.DebugKV(ctx, "Some packages were not installed", "error", err)
	}

	report.Installed = result.Installed
	report.Failed = result.Failed

	if result.Interrupted {
		return s.interrupted(ctx, report)
	}

	err = kernel.New(s.runner, s.python, s.out, s.kernelOptions...).Register(ctx, s.cfg.KernelName)
	if err != nil {
		logger.DebugKV(ctx, "Kernel was not registered", "error", err)
	}

	report.KernelRegistered = err == nil

	if err != nil && ctx.Err() != nil {
		return s.interrupted(ctx, report)
	}

	s.printSummary()

	return report
}

// interrupted reports a cancelled run and marks the report.
func (s *Setup) interrupted(ctx context.Context, report *Report) *Report {
	logger.DebugKV(ctx, "Setup interrupted", "error", ctx.Err())

	_, _ = fmt.Fprintln(s.out, "✗ Setup interrupted")

	report.Interrupted = true

	return report
}

// applyLogLevel sets the global level from the first non-empty value.
func applyLogLevel(ctx context.Context, values ...string) {
	for _, value := range values {
		if value == "" {
			continue
		}

		level, ok := logger.ParseLogLevel(value)
		if !ok {
			logger.Warnf(ctx, "Unknown log level %q, using %s", value, level)
		}

		logger.SetLevel(level)

		return
	}
}

// printSummary prints the closing banner with operator instructions.
func (s *Setup) printSummary() {
	rule := strings.Repeat("=", bannerWidth)

	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(rule)
	builder.WriteString("\nSetup complete! To start the notebook:\n")
	builder.WriteString("1. Run: jupyter notebook\n")
	builder.WriteString("2. Open: ")
	builder.WriteString(s.cfg.Notebook)
	builder.WriteString("\n3. Select kernel: ")
	builder.WriteString(s.cfg.KernelName)
	builder.WriteString("\n")
	builder.WriteString(rule)
	builder.WriteString("\n")

	_, _ = io.WriteString(s.out, builder.String())
}
