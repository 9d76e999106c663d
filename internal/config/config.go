// Package config provides configuration management for adascout.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Home      string          `yaml:"home"`
	Network   NetworkConfig   `yaml:"network"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// NetworkConfig defines which network to derive for and how to reach
// its transaction indexer.
type NetworkConfig struct {
	ID      string        `yaml:"id"` // "mainnet" or "testnet"
	Indexer IndexerConfig `yaml:"indexer"`
}

// IndexerConfig defines the chain-history indexer endpoint settings.
type IndexerConfig struct {
	URL       string  `yaml:"url"`
	APIKey    string  `yaml:"api_key"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second
	Burst     int     `yaml:"burst"`
}

// DiscoveryConfig defines address discovery settings.
type DiscoveryConfig struct {
	LookAhead      int  `yaml:"look_ahead"`
	DefaultAccount int  `yaml:"default_account"`
	Retry          bool `yaml:"retry"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the adascout home directory path.
func (c *Config) GetHome() string {
	return expandHome(c.Home)
}

// GetIndexerURL returns the configured indexer URL.
func (c *Config) GetIndexerURL() string {
	return c.Network.Indexer.URL
}

// GetIndexerAPIKey returns the configured indexer API key.
func (c *Config) GetIndexerAPIKey() string {
	return c.Network.Indexer.APIKey
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// IsMainnet returns true if the configured network is mainnet.
func (c *Config) IsMainnet() bool {
	return c.Network.ID != "testnet"
}

// DefaultHome returns the default adascout home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".adascout"
	}
	return filepath.Join(home, ".adascout")
}

// expandHome expands a leading ~/ to the user home directory.
func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
