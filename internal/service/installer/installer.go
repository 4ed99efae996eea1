package installer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"

	"github.com/oshokin/aifiles-notebook/internal/executor"
	"github.com/oshokin/aifiles-notebook/internal/logger"
)

// Installer runs `<python> -m pip install <package>` for each package.
type Installer struct {
	runner executor.Runner
	python string
	out    io.Writer
}

// Result lists the outcome per package, in install order.
type Result struct {
	Installed []string
	Failed    []string
	// Interrupted is set when the context was cancelled before every package was tried.
	Interrupted bool
}

// New creates an Installer that reports progress lines to out.
func New(runner executor.Runner, python string, out io.Writer) *Installer {
	return &Installer{
		runner: runner,
		python: python,
		out:    out,
	}
}

// Args returns the installer arguments for a single package.
func Args(pkg string) []string {
	return []string{"-m", "pip", "install", pkg}
}

// Install attempts every package and returns the combined failures.
// The returned error is informational: callers are expected to carry on.
// A cancelled context stops the loop without reporting the remaining packages.
func (i *Installer) Install(ctx context.Context, packages []string) (*Result, error) {
	ctx = logger.WithName(ctx, "installer")

	var (
		result = &Result{
			Installed: make([]string, 0, len(packages)),
		}
		errs error
	)

	for _, pkg := range packages {
		if ctx.Err() != nil {
			result.Interrupted = true
			return result, multierr.Append(errs, ctx.Err())
		}

		logger.DebugKV(ctx, "Installing package", "package", pkg, "python", i.python)

		if err := i.runner.Run(ctx, i.python, Args(pkg)...); err != nil {
			if ctx.Err() != nil {
				logger.DebugKV(ctx, "Package installation interrupted", "package", pkg, "error", err)

				result.Interrupted = true

				return result, multierr.Append(errs, ctx.Err())
			}

			logger.DebugKV(ctx, "Package installation failed",
				"package", pkg,
				"exit_code", executor.ExitCode(err),
				"error", err)

			result.Failed = append(result.Failed, pkg)
			errs = multierr.Append(errs, fmt.Errorf("install %s: %w", pkg, err))

			_, _ = fmt.Fprintf(i.out, "✗ Failed to install %s\n", pkg)

			continue
		}

		result.Installed = append(result.Installed, pkg)

		_, _ = fmt.Fprintf(i.out, "✓ Installed %s\n", pkg)
	}

	return result, errs
}
