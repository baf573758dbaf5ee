// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string `yaml:"format"`
		ConfidenceLevels string `yaml:"confidence_levels"`
		Checks           string `yaml:"checks"`
		Verbose          bool   `yaml:"verbose"`
		Debug            bool   `yaml:"debug"`
		NoColor          bool   `yaml:"no_color"`
		FraudAnalysis    bool   `yaml:"fraud_analysis"`
		WaiversFile      string `yaml:"waivers_file"`
	} `yaml:"defaults"`

	// Per-validator configurations (confidence floors, strictness knobs)
	Validators map[string]map[string]interface{} `yaml:"validators"`

	// Profiles for different verification scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents a verification profile with specific settings
type Profile struct {
	Format           string                            `yaml:"format"`
	ConfidenceLevels string                            `yaml:"confidence_levels"`
	Checks           string                            `yaml:"checks"`
	Verbose          bool                              `yaml:"verbose"`
	Debug            bool                              `yaml:"debug"`
	NoColor          bool                              `yaml:"no_color"`
	FraudAnalysis    bool                              `yaml:"fraud_analysis"`
	WaiversFile      string                            `yaml:"waivers_file"`
	Description      string                            `yaml:"description"`
	Validators       map[string]map[string]interface{} `yaml:"validators"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles:   make(map[string]Profile),
		Validators: make(map[string]map[string]interface{}),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.ConfidenceLevels = "all"
	config.Defaults.Checks = "all"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.FraudAnalysis = true

	// Built-in profiles. A config file can override them by name.
	config.Profiles["strict"] = Profile{
		Format:           "json",
		ConfidenceLevels: "high",
		Checks:           "all",
		FraudAnalysis:    true,
		Description:      "Onboarding flows: every check, fraud analysis on, high-confidence results only",
		Validators:       make(map[string]map[string]interface{}),
	}
	config.Profiles["lenient"] = Profile{
		Format:           "text",
		ConfidenceLevels: "all",
		Checks:           "CURP,RFC,CLABE",
		FraudAnalysis:    false,
		Description:      "Back-office data cleanup: identity and banking fields only, no fraud scoring",
		Validators:       make(map[string]map[string]interface{}),
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultFraudAnalysis := config.Defaults.FraudAnalysis

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file.
	// YAML unmarshaling sets absent bool fields to false.
	if !containsField(data, "defaults", "fraud_analysis") {
		config.Defaults.FraudAnalysis = defaultFraudAnalysis
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first - prioritize config.yaml
	for _, name := range []string{"config.yaml", "veridoc.yaml", "veridoc.yml", ".veridoc.yaml", ".veridoc.yml"} {
		if fileExists(name) {
			return name
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	// Check legacy location in home directory
	homeConfig := filepath.Join(home, ".veridoc.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	// Check XDG config directory
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		xdgConfigFile := filepath.Join(xdgConfig, "veridoc", name)
		if fileExists(xdgConfigFile) {
			return xdgConfigFile
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

// ListProfiles returns a list of available profile names
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// ValidatorFloors extracts per-validator min_confidence settings, keyed by
// upper-cased check name. Profile-level settings override config-level ones.
func (c *Config) ValidatorFloors(profile *Profile) map[string]float64 {
	floors := make(map[string]float64)
	collectFloors(floors, c.Validators)
	if profile != nil {
		collectFloors(floors, profile.Validators)
	}
	return floors
}

// collectFloors reads min_confidence values out of a validators option map.
// YAML numbers arrive as float64 or int depending on how they were written.
func collectFloors(floors map[string]float64, validators map[string]map[string]interface{}) {
	for name, options := range validators {
		switch v := options["min_confidence"].(type) {
		case float64:
			floors[strings.ToUpper(name)] = v
		case int:
			floors[strings.ToUpper(name)] = float64(v)
		}
	}
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			_, exists := current[key]
			return exists
		}
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
// This is the shared helper used by both the CLI and the web server.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Fall back to defaults — callers should not crash on a missing/bad config file.
		cfg, _ = LoadConfig("")
	}
	return cfg
}
