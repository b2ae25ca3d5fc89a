package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/shopfront/shopfront/internal/defs"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	dir    string
	state  managerState
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{state: stateUninitialized}
}

// Dir returns the configuration directory in effect: the EnvConfigDir
// override when set, otherwise ConfigDirName under the OS user config dir.
func Dir() (string, error) {
	if envDir := os.Getenv(defs.EnvConfigDir); envDir != "" {
		return filepath.Clean(envDir), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, defs.ConfigDirName), nil
}

// Load reads configuration from the config directory, merges file values
// over compiled defaults, and applies environment variable overrides.
// A missing config file is not an error; defaults apply. The merged
// configuration is validated before being stored.
func (m *Manager) Load() (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()

	path := filepath.Join(dir, defs.ConfigYAML)
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Debug("config file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidYAML, path, err)
		}
	}

	// Environment overrides win over file values.
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	m.config = cfg
	m.dir = dir
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// ConfigDir returns the directory the configuration was loaded from.
// Returns ErrNotInitialized before Load().
func (m *Manager) ConfigDir() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == stateUninitialized {
		return "", ErrNotInitialized
	}
	return m.dir, nil
}

// applyEnvOverrides mutates cfg with values from the environment.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(defs.EnvAPIBaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv(defs.EnvNoColor); v != "" {
		switch strings.ToLower(v) {
		case "0", "false", "no":
			cfg.UI.NoColor = false
		default:
			cfg.UI.NoColor = true
		}
	}
}
