package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads and parses a configuration file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from raw YAML bytes. Malformed
// documents and enum values surface as a ConfigurationError.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	return &cfg, nil
}

// ConfigFileNames lists the configuration file names searched, in order.
var ConfigFileNames = []string{
	"GitVersion.yml",
	"GitVersion.yaml",
	".GitVersion.yml",
	".GitVersion.yaml",
	"gitversion.yml",
	".gitversion.yml",
}

// FindConfigFile returns the first configuration file found in dir, then
// in dir/.github. It returns "" when there is none.
func FindConfigFile(dir string) string {
	for _, d := range []string{dir, filepath.Join(dir, ".github")} {
		for _, name := range ConfigFileNames {
			path := filepath.Join(d, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}
