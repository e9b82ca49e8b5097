package builder

import "github.com/joeydtaylor/tensilerig/pkg/internal/config"

type ConfigManager = config.Manager

type ConfigManagerOption = config.ManagerOption

// LoadConfig reads and validates settings. An empty path searches the default
// locations and falls back to built-in defaults.
func LoadConfig(path string) (*Settings, error) {
	return config.Load(path)
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Settings {
	return config.Default()
}

// NewConfigManager creates a manager that can hot-reload the config file.
func NewConfigManager(options ...ConfigManagerOption) *ConfigManager {
	return config.NewManager(options...)
}

func ConfigWithPath(path string) ConfigManagerOption {
	return config.WithConfigPath(path)
}

func ConfigWithWatchEnabled(enabled bool) ConfigManagerOption {
	return config.WithWatchEnabled(enabled)
}

func ConfigWithOnChange(fn ...func(*Settings)) ConfigManagerOption {
	return config.WithOnChange(fn...)
}

func ConfigWithLogger(l ...Logger) ConfigManagerOption {
	return config.WithLogger(l...)
}
