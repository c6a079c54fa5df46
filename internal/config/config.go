// Package config handles global configuration for the lr CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/lr/config.yml.
type Config struct {
	DBPath             string  `yaml:"db_path,omitempty"`
	TemplatesDir       string  `yaml:"templates_dir,omitempty"`
	CrossRefMailto     string  `yaml:"crossref_mailto,omitempty"`
	DuplicateThreshold float64 `yaml:"duplicate_threshold,omitempty"`
	OllamaURL          string  `yaml:"ollama_url,omitempty"`
	EmbeddingModel     string  `yaml:"embedding_model,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "lr"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// DefaultDBFile is the database file name under the data directory.
	DefaultDBFile = "review.db"
)

// configCache caches the loaded config for the process lifetime.
var configCache *Config

// Path returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/lr/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the global configuration. Returns an empty config (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg := &Config{}

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults below.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyDefaults(cfg)
	configCache = cfg
	return cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// applyDefaults fills unset fields.
func applyDefaults(cfg *Config) {
	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, ".local", "share", ConfigDir, DefaultDBFile)
		}
	} else {
		cfg.DBPath = ExpandTilde(cfg.DBPath)
	}
	if cfg.TemplatesDir != "" {
		cfg.TemplatesDir = ExpandTilde(cfg.TemplatesDir)
	}
	if cfg.DuplicateThreshold == 0 {
		cfg.DuplicateThreshold = 0.85
	}
	if cfg.CrossRefMailto == "" {
		cfg.CrossRefMailto = os.Getenv("CROSSREF_MAILTO")
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = os.Getenv("OLLAMA_URL")
	}
}

// Save writes the configuration to the global config path.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
