package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the ghm configuration
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// GitHubConfig represents GitHub connection settings
type GitHubConfig struct {
	// Token is used when no --token flag is given
	Token string `yaml:"token,omitempty"`
	// Owner is the organization or user targeted when none is given
	Owner string `yaml:"owner,omitempty"`
	// APIURL points at a GitHub Enterprise Server API, e.g.
	// https://ghe.example.com/api/v3/
	APIURL string `yaml:"api_url,omitempty"`
}

// DefaultsConfig holds default values for repository filtering flags
type DefaultsConfig struct {
	IncludeArchived bool `yaml:"include_archived"`
	IncludeForks    bool `yaml:"include_forks"`
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path. The file may hold
// a token so it is only readable by the owner.
func (c *Config) SaveConfigToPath(path string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".ghm", "config.yaml"), nil
}

// Validate validates the configuration. Every field is optional.
func (c *Config) Validate() error {
	if c.GitHub.APIURL == "" {
		return nil
	}

	u, err := url.Parse(c.GitHub.APIURL)
	if err != nil {
		return fmt.Errorf("github.api_url is not a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("github.api_url must be an absolute http(s) URL, got %q", c.GitHub.APIURL)
	}

	return nil
}
