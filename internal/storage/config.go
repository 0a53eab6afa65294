package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configFileName = "config.json"

	// ConfigEnvVar overrides the config file location.
	ConfigEnvVar = "LINKSTASH_CONFIG"
)

// Config holds application configuration.
type Config struct {
	StashPath     string `json:"stashPath"`     // empty = DefaultStashPath
	Program       string `json:"program"`       // empty = OS default opener
	EnrichTimeout string `json:"enrichTimeout"` // Go duration, "0" disables
	LogLevel      string `json:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		StashPath:     "",
		Program:       "",
		EnrichTimeout: "30s",
		LogLevel:      "warn",
	}
}

// Timeout parses EnrichTimeout.
func (c Config) Timeout() (time.Duration, error) {
	if c.EnrichTimeout == "" || c.EnrichTimeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.EnrichTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid enrichTimeout %q: %w", c.EnrichTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid enrichTimeout %q: must not be negative", c.EnrichTimeout)
	}
	return d, nil
}

// ResolveStashPath returns the configured stash path or the default one.
func (c Config) ResolveStashPath() (string, error) {
	if c.StashPath == "" {
		return DefaultStashPath()
	}
	return expandHome(c.StashPath)
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.EnrichTimeout == "" {
		config.EnrichTimeout = defaults.EnrichTimeout
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns $LINKSTASH_CONFIG or <config dir>/linkstash/config.json
func DefaultConfigFilePath() (string, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return expandHome(path)
	}

	dir, err := AppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
