package config

import (
	"fmt"
	"sync"
)

var (
	// globalConfig holds the configuration shared by long running commands.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex
)

// Initialize loads the configuration at path (defaults when the file does not
// exist) and stores it as the global configuration.
func Initialize(path string) (*Config, error) {
	cfg, err := LoadConfigOrDefault(path)
	if err != nil {
		return nil, err
	}
	SetConfig(cfg)
	return cfg, nil
}

// GetConfig returns the global configuration, or nil before Initialize.
func GetConfig() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// SetConfig replaces the global configuration.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}

// ReloadConfig reloads the configuration from path. Watch mode calls it when
// the configuration file changes. On failure the current configuration stays
// in place.
func ReloadConfig(path string) (*Config, error) {
	cfg, err := LoadConfigOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("failed to reload configuration: %w", err)
	}
	SetConfig(cfg)
	return cfg, nil
}
