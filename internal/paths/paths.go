// Package paths resolves configuration and catalog file locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative defaults used when no override is active.
const (
	DefaultConfigDirName = ".omen"
	DefaultCatalogName   = "catalog.db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir  = "OMEN_CONFIG_DIR"
	EnvCatalogDir = "OMEN_CATALOG_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/omen (fallback ~/.config/omen)
// macOS:   ~/Library/Application Support/omen
// Windows: %APPDATA%/omen
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "omen"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "omen"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "omen"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > OMEN_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveCatalogPath returns the catalog database file location following the
// precedence chain: flag > config.yaml value > OMEN_CATALOG_DIR env >
// $(CWD)/.omen/catalog.db.
//
// Flag and config values name the file directly; the environment variable
// names the directory holding it.
func ResolveCatalogPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvCatalogDir); env != "" {
		abs, err := filepath.Abs(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(abs, DefaultCatalogName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultConfigDirName, DefaultCatalogName), nil
}
