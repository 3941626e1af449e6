package config

import (
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "ontograph.yaml"
	// UserConfigDir is the directory for user-level config.
	UserConfigDir = ".config/ontograph"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/ontograph/config.yaml)
// 3. Project config (ontograph.yaml in current or parent directories)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	if userPath := l.userConfigPath(); userPath != "" {
		if userCfg, err := LoadFromFile(userPath); err == nil {
			config.Merge(userCfg)
			l.logger.Debug("loaded user config", "path", userPath)
		}
	}

	if projectPath := l.findProjectConfig(); projectPath != "" {
		projectCfg, err := LoadFromFile(projectPath)
		if err != nil {
			return nil, err
		}
		config.Merge(projectCfg)
		l.logger.Debug("loaded project config", "path", projectPath)
	}

	return config, nil
}

// userConfigPath returns the user config path when the file exists.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findProjectConfig walks from the working directory toward the filesystem
// root looking for ontograph.yaml.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
