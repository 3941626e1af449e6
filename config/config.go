// Package config provides configuration loading and management for ontograph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete ontograph configuration.
type Config struct {
	Fetch    FetchConfig    `yaml:"fetch"`
	Registry RegistryConfig `yaml:"registry"`
	Watch    WatchConfig    `yaml:"watch"`
}

// FetchConfig configures remote ontology retrieval.
type FetchConfig struct {
	// Timeout is the maximum time to wait for a remote OWL document.
	Timeout time.Duration `yaml:"timeout"`

	// AllowPrivate permits fetching from loopback/private addresses.
	AllowPrivate bool `yaml:"allow_private"`
}

// RegistryConfig configures ontology name resolution.
type RegistryConfig struct {
	// Path is the registry YAML file (empty = no named ontologies).
	Path string `yaml:"path"`

	// DiscoverDirs are scanned recursively for *.summary.json files to
	// auto-register alongside the registry file's explicit entries.
	DiscoverDirs []string `yaml:"discover_dirs"`
}

// WatchConfig configures the re-summarize-on-change watcher.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before
	// re-summarizing.
	DebounceDelay time.Duration `yaml:"debounce_delay"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			Timeout: 30 * time.Second,
		},
		Watch: WatchConfig{
			DebounceDelay: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Fetch.Timeout != 0 {
		c.Fetch.Timeout = other.Fetch.Timeout
	}
	if other.Fetch.AllowPrivate {
		c.Fetch.AllowPrivate = true
	}

	if other.Registry.Path != "" {
		c.Registry.Path = other.Registry.Path
	}
	if len(other.Registry.DiscoverDirs) > 0 {
		c.Registry.DiscoverDirs = other.Registry.DiscoverDirs
	}

	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
}
