package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joeydtaylor/tensilerig/pkg/internal/types"
	"github.com/spf13/viper"
)

// Manager owns the loaded settings and, when watching is enabled, reloads them
// whenever the config file changes. Components read Current() when a session
// starts, so a reload never affects a session already running.
type Manager struct {
	mu           sync.RWMutex
	settings     *Settings
	v            *viper.Viper
	path         string
	watchEnabled bool
	onChange     []func(*Settings)
	loggers      []types.Logger
}

type ManagerOption func(*Manager)

// WithConfigPath sets an explicit config file instead of the search paths.
func WithConfigPath(path string) ManagerOption {
	return func(m *Manager) {
		m.path = path
	}
}

// WithWatchEnabled enables hot reload of the config file.
func WithWatchEnabled(enabled bool) ManagerOption {
	return func(m *Manager) {
		m.watchEnabled = enabled
	}
}

// WithOnChange registers callbacks invoked with each successfully reloaded Settings.
func WithOnChange(fn ...func(*Settings)) ManagerOption {
	return func(m *Manager) {
		m.onChange = append(m.onChange, fn...)
	}
}

func WithLogger(l ...types.Logger) ManagerOption {
	return func(m *Manager) {
		m.loggers = append(m.loggers, l...)
	}
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads and validates the settings. It is a no-op once loaded.
func (m *Manager) Load() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings != nil {
		return m.settings, nil
	}

	s, v, err := load(m.path)
	if err != nil {
		return nil, err
	}
	m.settings = s
	m.v = v

	if m.watchEnabled && v.ConfigFileUsed() != "" {
		m.watch()
	}
	return s, nil
}

// RegisterOnChange adds callbacks for later reloads.
func (m *Manager) RegisterOnChange(fn ...func(*Settings)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn...)
}

// ConnectLogger adds loggers for reload events.
func (m *Manager) ConnectLogger(l ...types.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loggers = append(m.loggers, l...)
}

// Current returns the most recently loaded settings, or nil before Load.
func (m *Manager) Current() *Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// ConfigFileUsed returns the path of the file the settings came from, if any.
func (m *Manager) ConfigFileUsed() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.v == nil {
		return ""
	}
	return m.v.ConfigFileUsed()
}

// Reload re-reads the config file. Invalid files leave the current settings in place.
func (m *Manager) Reload() error {
	m.mu.Lock()
	if m.v == nil {
		m.mu.Unlock()
		return fmt.Errorf("config: reload before load")
	}
	if err := m.v.ReadInConfig(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("read config: %w", err)
	}
	s, err := decode(m.v)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	m.settings = s
	callbacks := append([]func(*Settings){}, m.onChange...)
	m.mu.Unlock()

	for _, fn := range callbacks {
		if fn != nil {
			fn(s)
		}
	}
	return nil
}

// watch must be called with mu held.
func (m *Manager) watch() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		if err := m.Reload(); err != nil {
			m.notifyLoggers(types.WarnLevel, "config reload rejected",
				"event", "Reload",
				"result", "FAILURE",
				"file", e.Name,
				"error", err,
			)
			return
		}
		m.notifyLoggers(types.InfoLevel, "config reloaded",
			"event", "Reload",
			"result", "SUCCESS",
			"file", e.Name,
			"op", e.Op.String(),
		)
	})
	m.v.WatchConfig()
}

func (m *Manager) notifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	m.mu.RLock()
	loggers := append([]types.Logger(nil), m.loggers...)
	m.mu.RUnlock()

	types.Emit(loggers, level, msg, keysAndValues...)
}
