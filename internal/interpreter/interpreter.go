package interpreter

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Fallback is used as-is when nothing else resolves.
const Fallback = "python3"

// virtualEnvVariable is exported by activated virtual environments.
const virtualEnvVariable = "VIRTUAL_ENV"

// ErrNotFound is returned when no Python interpreter can be located.
var ErrNotFound = errors.New("python interpreter not found")

// Resolve returns the interpreter to use:
// the configured one, then the active virtual environment, then python3 or python on PATH.
func Resolve(configured string) (string, error) {
	if configured != "" {
		path, err := exec.LookPath(configured)
		if err != nil {
			return "", fmt.Errorf("configured interpreter %q: %w", configured, err)
		}

		return path, nil
	}

	if venv := os.Getenv(virtualEnvVariable); venv != "" {
		candidate := venvPython(venv)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", ErrNotFound
}

func venvPython(venv string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venv, "Scripts", "python.exe")
	}

	return filepath.Join(venv, "bin", "python")
}
