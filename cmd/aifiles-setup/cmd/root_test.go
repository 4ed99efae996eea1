package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/aifiles-notebook/internal/config"
)

// TestRootCommandSucceedsWhenEverythingFails runs a setup with no usable interpreter
// and expects a clean exit with the closing instructions.
func TestRootCommandSucceedsWhenEverythingFails(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PATH", t.TempDir())
	t.Setenv("VIRTUAL_ENV", "")

	cfgPath := filepath.Join(dir, config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfgPath, &config.Config{
		Interpreter: filepath.Join(dir, "missing", "python"),
		Packages:    []string{"numpy", "pandas"},
	}))

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"--config", cfgPath})

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	require.Contains(t, text, "✗ Failed to install numpy\n✗ Failed to install pandas\n")
	require.Contains(t, text, "✗ Failed to setup Jupyter kernel\n")
	require.Contains(t, text, "Setup complete! To start the notebook:\n")
	require.Contains(t, text, "3. Select kernel: aifiles\n")
}

// TestRootCommandRejectsArguments ensures the entry point takes no positional arguments.
func TestRootCommandRejectsArguments(t *testing.T) {
	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"extra"})

	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	require.Error(t, rootCmd.Execute())
	require.NotContains(t, out.String(), "Setting up AI File Sorter notebook environment...")
}
