// Package config loads optional tuning for the provisioning pipeline.
// Everything has a working default; the YAML file only overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDataRoot is used when neither the CLI nor the config file names one.
const DefaultDataRoot = "/workspace/data"

// Config tunes the provisioning pipeline and trainer invocation.
type Config struct {
	DataRoot    string `yaml:"data_root"`
	Profile     string `yaml:"profile"` // shell profile path
	Parallelism int    `yaml:"parallelism"`

	// Delays are duration strings, e.g. "2s" or "500ms".
	Retry struct {
		MaxRetries int    `yaml:"max_retries"`
		BaseDelay  string `yaml:"base_delay"`
		MaxDelay   string `yaml:"max_delay"`
	} `yaml:"retry"`

	S3 struct {
		Bucket  string `yaml:"bucket"`
		Region  string `yaml:"region"`
		Profile string `yaml:"profile"`
	} `yaml:"s3"`

	Trainer struct {
		Command string `yaml:"command"`
	} `yaml:"trainer"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		DataRoot:    DefaultDataRoot,
		Parallelism: 4,
	}
	cfg.Profile = defaultProfile()
	cfg.S3.Bucket = "trackprep-artifacts"
	cfg.S3.Region = "us-east-1"
	return cfg
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged; a missing file is an error since the path was
// explicitly requested.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func defaultProfile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/root/.bashrc"
	}
	return filepath.Join(home, ".bashrc")
}
