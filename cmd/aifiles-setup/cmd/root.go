package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/aifiles-notebook/internal/config"
	"github.com/oshokin/aifiles-notebook/internal/service/setup"
	"github.com/oshokin/aifiles-notebook/internal/version"
)

var (
	// configPath to the optional settings YAML file.
	configPath string
	// logLevel controls diagnostics written to stderr.
	logLevel string

	// rootCmd installs the notebook packages and registers the kernel.
	rootCmd = &cobra.Command{
		Use:   "aifiles-setup",
		Short: "Prepare the AI File Sorter notebook environment.",
		Long: `Installs the packages the AI File Sorter notebook needs into the active
Python environment, one pip call per package, then registers a user-scoped
Jupyter kernel named "aifiles".

A failed step is reported and the next one runs anyway; the command always
finishes with the instructions for starting the notebook.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			setup.Run(ctx, &setup.Options{
				ConfigPath: configPath,
				LogLevel:   logLevel,
				Stdout:     cmd.OutOrStdout(),
			})

			return nil
		},
	}
)

// Execute runs the aifiles-setup CLI. Only usage errors produce a non-zero status.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to optional settings file")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "diagnostics level: debug, info, warn, error")
}
