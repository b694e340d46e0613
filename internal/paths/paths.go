// Package paths resolves the configuration directory and the database
// settings file location.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default names, relative to the working directory.
const (
	DefaultSettingsFile = "database.ini"
	ConfigFileName      = "config.yaml"
	appDirName          = "phonebook"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir = "PHONEBOOK_CONFIG_DIR"
	EnvSettings  = "PHONEBOOK_SETTINGS"
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
// Linux:   $XDG_CONFIG_HOME/phonebook (fallback ~/.config/phonebook)
// macOS:   ~/Library/Application Support/phonebook
// Windows: %APPDATA%/phonebook
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the precedence
// chain: flag > PHONEBOOK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveSettingsFile returns the INI settings file path following the
// precedence chain: flag > PHONEBOOK_SETTINGS env > configValue >
// $(CWD)/database.ini.
//
// configValue is the settings_file entry of config.yaml.
func ResolveSettingsFile(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvSettings); env != "" {
		return filepath.Abs(env)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	return filepath.Abs(DefaultSettingsFile)
}

// RelativeTo resolves p against the directory containing base. Absolute
// paths and the SQLite in-memory name are returned unchanged.
func RelativeTo(base, p string) string {
	if p == "" || p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(base), p)
}
