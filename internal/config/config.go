package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "dpctl"
	configFile = "config.yaml"

	// DefaultChannels is the channel count of the DP832, the common case
	DefaultChannels = 3

	// DefaultTickMillis is the snapshot refresh interval
	DefaultTickMillis = 250
)

// Settings is the user configuration file. Only the address is required,
// and only when it is not supplied on the command line.
type Settings struct {
	// Address is the instrument address in host:port form
	Address string `yaml:"address"`

	// Channels is the instrument's channel count
	Channels int `yaml:"channels,omitempty"`

	// TickMillis is the snapshot refresh interval in milliseconds
	TickMillis int `yaml:"tick_ms,omitempty"`
}

// NewSettings returns settings with default values and no address.
func NewSettings() *Settings {
	return &Settings{
		Channels:   DefaultChannels,
		TickMillis: DefaultTickMillis,
	}
}

// TickInterval returns the refresh interval as a duration.
func (s *Settings) TickInterval() time.Duration {
	return time.Duration(s.TickMillis) * time.Millisecond
}

// GetConfigDir returns the OS-appropriate configuration directory.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/dpctl or $HOME/.config/dpctl
//   - macOS: $HOME/.config/dpctl (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\dpctl
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	default:
		// Unix-like systems: XDG_CONFIG_HOME or $HOME/.config
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the user configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads settings from the given file, applying defaults for any field
// the file omits.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	settings := NewSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if settings.Channels <= 0 {
		settings.Channels = DefaultChannels
	}
	if settings.TickMillis <= 0 {
		settings.TickMillis = DefaultTickMillis
	}

	return settings, nil
}

// Resolve produces the effective settings from, in order of precedence:
// the --address flag, an explicit --config file, and the user config file.
// A missing user config file is fine (defaults apply); a missing explicit
// file is an error. An empty address after all sources is an error.
func Resolve(flagAddress, flagConfig string) (*Settings, error) {
	var settings *Settings

	switch {
	case flagConfig != "":
		loaded, err := Load(flagConfig)
		if err != nil {
			return nil, err
		}
		settings = loaded

	default:
		path, err := GetConfigPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			settings = NewSettings()
		} else {
			loaded, err := Load(path)
			if err != nil {
				return nil, err
			}
			settings = loaded
		}
	}

	if flagAddress != "" {
		settings.Address = flagAddress
	}
	if settings.Address == "" {
		return nil, fmt.Errorf("instrument address not provided (use --address or set it in the config file)")
	}

	return settings, nil
}
