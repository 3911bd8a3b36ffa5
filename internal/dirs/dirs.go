// Package dirs resolves XDG base directories for helpdesk.
package dirs

import (
	"os"
	"path/filepath"
)

const appName = "helpdesk"

// ConfigDir returns the global configuration directory.
// Resolution order: XDG_CONFIG_HOME/helpdesk > ~/.config/helpdesk.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", appName)
	}
	return filepath.Join(home, ".config", appName)
}

// StateDir returns the state directory holding logs.
// Resolution order: HELPDESK_STATE_DIR > XDG_STATE_HOME/helpdesk > ~/.local/state/helpdesk.
func StateDir() string {
	if dir := os.Getenv("HELPDESK_STATE_DIR"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".local", "state", appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// LogFile returns the default log file path (StateDir/helpdesk.log).
func LogFile() string {
	return filepath.Join(StateDir(), appName+".log")
}
