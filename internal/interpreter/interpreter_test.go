package interpreter

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeExecutable(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755)) //nolint:gosec // Test fixture must be executable.
}

// TestResolveConfiguredPath returns an explicit interpreter path untouched.
func TestResolveConfiguredPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit is not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "python-custom")
	writeExecutable(t, path)

	got, err := Resolve(path)
	require.NoError(t, err)
	require.Equal(t, path, got)
}

// TestResolveConfiguredMissing reports a configured interpreter that does not exist.
func TestResolveConfiguredMissing(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "nope", "python"))
	require.Error(t, err)
}

// TestResolveVirtualEnv prefers the interpreter of the active virtual environment.
func TestResolveVirtualEnv(t *testing.T) {
	venv := t.TempDir()
	python := venvPython(venv)
	writeExecutable(t, python)

	t.Setenv(virtualEnvVariable, venv)

	got, err := Resolve("")
	require.NoError(t, err)
	require.Equal(t, python, got)
}

// TestResolveSearchesPath falls back to python3 on PATH.
func TestResolveSearchesPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH lookup uses PATHEXT on windows")
	}

	dir := t.TempDir()
	writeExecutable(t, filepath.Join(dir, "python3"))

	t.Setenv(virtualEnvVariable, "")
	t.Setenv("PATH", dir)

	got, err := Resolve("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "python3"), got)
}

// TestResolveNothingFound reports ErrNotFound on an empty PATH.
func TestResolveNothingFound(t *testing.T) {
	t.Setenv(virtualEnvVariable, "")
	t.Setenv("PATH", t.TempDir())

	_, err := Resolve("")
	require.ErrorIs(t, err, ErrNotFound)
}
