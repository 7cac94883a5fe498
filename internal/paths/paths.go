// Package paths resolves configuration and data directory locations.
//
// Both default to locations derived from the install directory, the
// directory holding the running executable, so the database lives at a
// fixed place regardless of the working directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDataDirName is the data directory created under the install directory.
const DefaultDataDirName = "data"

// platform holds process-inspection functions that can be overridden in tests.
var platform = struct {
	executable   func() (string, error)
	evalSymlinks func(string) (string, error)
}{
	executable:   os.Executable,
	evalSymlinks: filepath.EvalSymlinks,
}

// InstallDir returns the directory containing the running executable, with
// symlinks resolved.
func InstallDir() (string, error) {
	exe, err := platform.executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	resolved, err := platform.evalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	return filepath.Dir(resolved), nil
}

// DefaultConfigDir returns the directory searched for config.yaml when no
// override is given: the install directory itself.
func DefaultConfigDir() (string, error) {
	return InstallDir()
}

// DefaultDataDir returns <install dir>/data.
func DefaultDataDir() (string, error) {
	dir, err := InstallDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultDataDirName), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > DefaultDataDir(). Relative values are made
// absolute against the working directory.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	return DefaultDataDir()
}
