// Package rconfig loads the CLI's global configuration file.
package rconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pkgforge/pkgresolve/internal/security"
)

// LoggingConfig controls basic logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// GlobalConfig holds tool-level configuration for the resolver CLI.
type GlobalConfig struct {
	Workers            int      `yaml:"workers" json:"workers"`
	CacheDir           string   `yaml:"cache_dir" json:"cache_dir"`
	DefaultPlatformTags []string `yaml:"default_platform_tags" json:"default_platform_tags"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

var (
	globalInstance *GlobalConfig
	globalMutex    sync.RWMutex
)

// SetGlobal installs config as the process-wide configuration, called once
// at CLI startup.
func SetGlobal(config *GlobalConfig) {
	globalMutex.Lock()
	defer globalMutex.Unlock()
	globalInstance = config
}

// Global returns the process-wide configuration, defaulting it if nothing
// has called SetGlobal yet.
func Global() *GlobalConfig {
	globalMutex.RLock()
	if globalInstance != nil {
		defer globalMutex.RUnlock()
		return globalInstance
	}
	globalMutex.RUnlock()

	globalMutex.Lock()
	defer globalMutex.Unlock()
	if globalInstance == nil {
		globalInstance = DefaultGlobalConfig()
	}
	return globalInstance
}

// DefaultGlobalConfig returns a GlobalConfig with sensible defaults.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Workers:             8,
		CacheDir:            "./cache",
		DefaultPlatformTags: []string{"unix", "linux"},
		Logging:             LoggingConfig{Level: "info"},
	}
}

// LoadGlobalConfig loads configuration from the given path, falling back
// to defaults when the path is empty or does not exist.
func LoadGlobalConfig(configPath string) (*GlobalConfig, error) {
	config := DefaultGlobalConfig()

	if configPath == "" {
		return config, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	data, err := security.SafeReadFile(configPath, security.RejectSymlinks)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
	}

	ext := strings.ToLower(filepath.Ext(configPath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s (supported: .yaml, .yml)", ext)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

// SaveGlobalConfig writes the configuration to the given path as YAML.
func (gc *GlobalConfig) SaveGlobalConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := yaml.Marshal(gc)
	if err != nil {
		return fmt.Errorf("marshaling config to YAML: %w", err)
	}
	if err := security.SafeWriteFile(configPath, data, 0o644, security.RejectSymlinks); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for consistency and fills in defaults
// for empty values.
func (gc *GlobalConfig) Validate() error {
	if gc.Workers <= 0 {
		gc.Workers = 8
	}
	if gc.Workers > 100 {
		return fmt.Errorf("workers cannot exceed 100, got %d", gc.Workers)
	}
	if gc.CacheDir == "" {
		gc.CacheDir = "./cache"
	}
	if len(gc.DefaultPlatformTags) == 0 {
		gc.DefaultPlatformTags = []string{"unix", "linux"}
	}
	if gc.Logging.Level == "" {
		gc.Logging.Level = "info"
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, gc.Logging.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s",
			gc.Logging.Level, strings.Join(validLevels, ", "))
	}
	return nil
}

// GetConfigPaths returns the standard configuration file paths to check,
// in priority order.
func GetConfigPaths() []string {
	homeDir, _ := os.UserHomeDir()

	paths := []string{
		"pkgresolve.yml",
		".pkgresolve.yml",
		"pkgresolve.yaml",
		".pkgresolve.yaml",
	}
	if homeDir != "" {
		paths = append(paths,
			filepath.Join(homeDir, ".config", "pkgresolve", "config.yml"),
			filepath.Join(homeDir, ".config", "pkgresolve", "config.yaml"),
		)
	}
	paths = append(paths,
		"/etc/pkgresolve/config.yml",
		"/etc/pkgresolve/config.yaml",
	)
	return paths
}

// FindConfigFile searches for a configuration file in standard locations.
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
