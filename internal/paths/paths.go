// Package paths resolves configuration and database file locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// Default file and directory names.
const (
	DefaultDBFileName = "jokes.db"

	// LambdaDBPath is used when running inside AWS Lambda, where the only
	// writable filesystem is the ephemeral /tmp.
	LambdaDBPath = "/tmp/jokes.db"
)

// Environment variable names.
const (
	EnvConfigDir = "JOKEBOX_CONFIG_DIR"
	EnvDBPath    = "JOKEBOX_DB_PATH"

	// EnvLambda is set by the AWS Lambda runtime; its presence selects the
	// ephemeral database location.
	EnvLambda = "AWS_LAMBDA_FUNCTION_NAME"
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
// Linux:   $XDG_CONFIG_HOME/jokebox (fallback ~/.config/jokebox)
// macOS:   ~/Library/Application Support/jokebox
// Windows: %APPDATA%/jokebox
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "jokebox"), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "jokebox"), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "jokebox"), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > JOKEBOX_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDBPath returns the database file path following the precedence
// chain: flag > config.yaml value > JOKEBOX_DB_PATH env > Lambda ephemeral
// path (when AWS_LAMBDA_FUNCTION_NAME is set) > $(CWD)/jokes.db.
func ResolveDBPath(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return filepath.Abs(env)
	}
	if os.Getenv(EnvLambda) != "" {
		return LambdaDBPath, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDBFileName), nil
}
