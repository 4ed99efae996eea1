package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of a setup run.
//
// Environment keys are derived from field names under EnvPrefix
// (AIFILES_INTERPRETER, AIFILES_KERNEL_NAME, ...). Do not add envconfig tags:
// envconfig also reads the bare tag name without the prefix.
type Config struct {
	// Interpreter is the Python executable whose environment receives the packages.
	// Empty means auto-detect the active interpreter.
	Interpreter string `yaml:"interpreter,omitempty" split_words:"true"`
	// Packages is the ordered list of packages installed one by one.
	Packages []string `yaml:"packages" split_words:"true"`
	// KernelName is the name of the user-scoped Jupyter kernel to register.
	KernelName string `yaml:"kernel_name" split_words:"true"`
	// Notebook is the notebook file the operator is told to open.
	Notebook string `yaml:"notebook" split_words:"true"`
	// LogLevel is the diagnostics level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty" split_words:"true"`
}

const (
	// DefaultConfigFilename is the default settings file looked up in the working directory.
	DefaultConfigFilename = "aifiles-setup.yaml"

	// DefaultKernelName is the kernel registered when none is configured.
	DefaultKernelName = "aifiles"

	// DefaultNotebook is the notebook named in the closing instructions.
	DefaultNotebook = "Aifiles.ipynb"

	// EnvPrefix prefixes every environment override, e.g. AIFILES_INTERPRETER.
	EnvPrefix = "AIFILES"

	// DefaultFilePermissions is the permission used when saving settings.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNoPackages is returned when the package list is empty.
	errNoPackages = errors.New("package list must not be empty")
	// errBadPackageName is returned for blank names or names that look like installer flags.
	errBadPackageName = errors.New("invalid package name")
	// errBadKernelName is returned when the kernel name has characters Jupyter rejects.
	errBadKernelName = errors.New("invalid kernel name")

	kernelNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

// DefaultPackages returns the packages the notebook needs, in install order.
func DefaultPackages() []string {
	return []string{
		"jupyter",
		"notebook",
		"ipykernel",
		"PyMuPDF",    // PDF processing.
		"pandas",     // Data analysis.
		"matplotlib", // Visualizations.
		"requests",   // API calls.
	}
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Packages:   DefaultPackages(),
		KernelName: DefaultKernelName,
		Notebook:   DefaultNotebook,
	}
}

// Load reads settings from path over the defaults, applies AIFILES_* environment
// overrides and validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment overrides: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the settings and fills defaults for optional fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if len(cfg.Packages) == 0 {
		return errNoPackages
	}

	for i, name := range cfg.Packages {
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "-") {
			return fmt.Errorf("%w: %q at position %d", errBadPackageName, cfg.Packages[i], i+1)
		}

		cfg.Packages[i] = name
	}

	if cfg.KernelName == "" {
		cfg.KernelName = DefaultKernelName
	}

	if !kernelNamePattern.MatchString(cfg.KernelName) {
		return fmt.Errorf("%w: %q", errBadKernelName, cfg.KernelName)
	}

	if cfg.Notebook == "" {
		cfg.Notebook = DefaultNotebook
	}

	cfg.Interpreter = strings.TrimSpace(cfg.Interpreter)

	return nil
}
