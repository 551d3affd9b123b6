// Package config resolves installer settings from flags, the environment,
// an optional YAML settings file, and built-in defaults, in that order of
// precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultRepository is the repository the tpdf releases are published at.
	DefaultRepository = "IWhitebird/tpdf"

	// DefaultTimeout is the timeout applied to network operations. A hung
	// network call must not hang the run indefinitely.
	DefaultTimeout = 5 * time.Minute

	// EnvInstallDir overrides the install directory when set.
	EnvInstallDir = "TPDF_INSTALL_DIR"
)

// Config holds the resolved installer settings.
type Config struct {
	// InstallDir is the directory the executable is placed in.
	InstallDir string `yaml:"install_dir"`
	// Repository identifies the release source, "owner/name".
	Repository string `yaml:"repository"`
	// Timeout bounds each network operation.
	Timeout time.Duration `yaml:"timeout"`
	// VerifyChecksum enables SHA-256 verification against the release's
	// checksums.txt when the sidecar is published.
	VerifyChecksum bool `yaml:"verify_checksum"`
	// GPGKeyFile is an optional armored public key; when set, the archive's
	// detached signature must verify against it.
	GPGKeyFile string `yaml:"gpg_key_file"`
}

// DefaultInstallDir returns the default user-local binary directory.
func DefaultInstallDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "bin"), nil
}

// Default returns the built-in settings.
func Default() (*Config, error) {
	installDir, err := DefaultInstallDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		InstallDir:     installDir,
		Repository:     DefaultRepository,
		Timeout:        DefaultTimeout,
		VerifyChecksum: true,
	}, nil
}

// Load resolves settings from defaults, the optional YAML file at path, and
// the environment. Flag-level overrides are applied by the caller on top of
// the returned value. An empty path means no settings file.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path != "" {
		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}

		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	if dir := os.Getenv(EnvInstallDir); dir != "" {
		cfg.InstallDir = dir
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and formats.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is not set")
	}

	if cfg.InstallDir == "" {
		return fmt.Errorf("install directory must be provided")
	}

	if parts := strings.Split(cfg.Repository, "/"); len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("repository must be in owner/name form, got %q", cfg.Repository)
	}

	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}

	return nil
}
