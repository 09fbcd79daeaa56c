// Package config loads the optional .tqfuzz.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".tqfuzz.yaml"

// Default values for runner configuration.
const (
	DefaultTimeout   = time.Duration(0) // wait for the target forever
	DefaultMaxOutput = 1 << 20          // 1 MB per stream
)

// Config holds the parsed configuration.
// All fields are optional; zero values leave the flag defaults in place.
type Config struct {
	Version      int      `yaml:"version"`
	Input        string   `yaml:"original_input"`
	OutDir       string   `yaml:"out_dir"`
	LogFileName  string   `yaml:"logfile_name"`
	Executable   string   `yaml:"target_executable"`
	DrugDir      string   `yaml:"drug_definitions_dir"`
	Scratch      string   `yaml:"scratch_dir"`
	Prefix       string   `yaml:"prefix"`
	Strict       bool     `yaml:"strict"`
	Mutators     []string `yaml:"mutators"`
	Parallel     int      `yaml:"parallel"`
	RawTimeout   string   `yaml:"timeout"`    // e.g. "30s", "2m"
	RawMaxOutput int      `yaml:"max_output"` // bytes
	// ResultsDB is a pointer so an explicit "" (store disabled) differs from unset.
	ResultsDB *string `yaml:"results_db"`
}

// Timeout returns the configured per-mutant timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}

	return DefaultTimeout
}

// MaxOutputBytes returns the configured capture limit or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}

	return DefaultMaxOutput
}

// Validate reports settings that cannot be honored.
func (c *Config) Validate() error {
	var errs []error

	if c.RawTimeout != "" {
		if d, err := time.ParseDuration(c.RawTimeout); err != nil || d < 0 {
			errs = append(errs, fmt.Errorf("invalid timeout %q", c.RawTimeout))
		}
	}

	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("invalid parallel %d", c.Parallel))
	}

	if c.RawMaxOutput < 0 {
		errs = append(errs, fmt.Errorf("invalid max_output %d", c.RawMaxOutput))
	}

	return errors.Join(errs...)
}

// Load reads the configuration at path. An empty path looks for DefaultFile
// and yields an empty Config when it does not exist; a named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// #nosec G304 - the path is supplied by the operator
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}
