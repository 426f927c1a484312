// Package config loads the optional CLI configuration file. Flags always
// win over file values; the file only supplies defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/wakego/wakego/internal/method"
	"github.com/wakego/wakego/internal/mode"
)

// File is the on-disk configuration, read from
// $XDG_CONFIG_HOME/wakego/config.yaml (or the platform equivalent).
type File struct {
	// Mode is the default mode name when neither -r nor -p is given.
	Mode string `yaml:"mode"`

	// Methods and Omit are the default allow/deny method filters.
	Methods []string `yaml:"methods"`
	Omit    []string `yaml:"omit"`

	// Priority is the default methods priority order.
	Priority []string `yaml:"methods_priority"`

	// OnFail is the default failure action: error, warn or pass.
	OnFail string `yaml:"on_fail"`
}

// DefaultPath returns the expected location of the configuration file.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wakego", "config.yaml"), nil
}

// Load reads the configuration from the default path. A missing file is not
// an error; it yields the zero configuration.
func Load() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return &File{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path.
func LoadFrom(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

func (f *File) validate() error {
	switch f.Mode {
	case "", method.ModeKeepRunning, method.ModeKeepPresenting:
	default:
		return fmt.Errorf("unknown mode %q", f.Mode)
	}
	switch mode.OnFail(f.OnFail) {
	case "", mode.OnFailError, mode.OnFailWarn, mode.OnFailPass:
	default:
		return fmt.Errorf("unknown on_fail action %q", f.OnFail)
	}
	if f.Methods != nil && f.Omit != nil {
		return fmt.Errorf("methods and omit cannot both be set")
	}
	return nil
}
