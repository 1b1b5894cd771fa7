// Package paths resolves the configuration directory and the default
// location of exported snapshots.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory name used under the platform config and data roots.
const AppDirName = "shelf"

// SnapshotFileName is the file name of an export written to the data directory.
const SnapshotFileName = "snapshot.db"

// Environment variable names for path overrides.
const (
	EnvConfigDir  = "SHELF_CONFIG_DIR"
	EnvExportPath = "SHELF_EXPORT_PATH"
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
// Linux:   $XDG_CONFIG_HOME/shelf (fallback ~/.config/shelf)
// macOS:   ~/Library/Application Support/shelf
// Windows: %APPDATA%/shelf
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	return userConfigDir()
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/shelf (fallback ~/.local/share/shelf)
// macOS:   ~/Library/Application Support/shelf
// Windows: %APPDATA%/shelf
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	// macOS and Windows keep data next to config.
	return userConfigDir()
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > SHELF_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return resolve(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveExportPath returns the snapshot path following the precedence chain:
// flag > configValue > SHELF_EXPORT_PATH env > DefaultDataDir()/snapshot.db.
// configValue must come from config.yaml only, not from the environment.
func ResolveExportPath(flag, configValue string) (string, error) {
	return resolve(defaultExportPath, flag, configValue, os.Getenv(EnvExportPath))
}

// resolve returns the first non-empty candidate as an absolute path, or
// fallback's result when every candidate is empty.
func resolve(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}

func defaultExportPath() (string, error) {
	dir, err := DefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SnapshotFileName), nil
}

// xdgDir returns $env/shelf, or ~/homeRel/shelf when env is unset.
func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppDirName), nil
}

// userConfigDir uses os.UserConfigDir, which returns ~/Library/Application
// Support on macOS and %APPDATA% on Windows.
func userConfigDir() (string, error) {
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName), nil
}
