// Package config provides configuration loading and management for autoguillotine.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Splitting parameters
	Splitting struct {
		// Threshold is the minimum discontinuity magnitude required to
		// accept a cut
		Threshold float64 `yaml:"threshold"`

		// MinSize is the minimum width/height a region must have to be
		// eligible for further cutting
		MinSize int `yaml:"minSize"`
	} `yaml:"splitting"`

	// Processing parameters
	Processing struct {
		// Parallel enables fork-join processing of the two halves of
		// each split
		Parallel bool `yaml:"parallel"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Format is the encoding used for the emitted sub-images
		// ("png" or "jpeg")
		Format string `yaml:"format"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default splitting parameters
	cfg.Splitting.Threshold = 30.0
	cfg.Splitting.MinSize = 100

	// Set default processing parameters
	cfg.Processing.Parallel = true

	// Set default output parameters
	cfg.Output.Format = "png"
	cfg.Output.Verbose = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
