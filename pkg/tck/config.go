package tck

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-tck/pkg/compare"
	"github.com/dd0wney/cluso-tck/pkg/logging"
	"github.com/dd0wney/cluso-tck/pkg/nbv"
	"github.com/dd0wney/cluso-tck/pkg/validation"
)

// Config configures a Checker
type Config struct {
	// MaxDepth bounds how deeply expected literals may nest
	MaxDepth int `yaml:"max_depth" validate:"min=1,max=1024"`

	// LogLevel is one of debug, info, warn, error. Empty keeps the logger's level.
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`

	// DefaultPolicy is used by Check when no policy is given
	DefaultPolicy compare.Policy `yaml:"default_policy"`

	// Variables seed the placeholder map: name -> literal text
	Variables map[string]string `yaml:"variables" validate:"dive,keys,variable,endkeys"`
}

// DefaultConfig returns the configuration used when none is supplied
func DefaultConfig() Config {
	return Config{
		MaxDepth:      nbv.DefaultMaxDepth,
		DefaultPolicy: compare.DefaultPolicy(),
		Variables:     make(map[string]string),
	}
}

// LoadConfig reads a YAML configuration file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML configuration
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Variables == nil {
		cfg.Variables = make(map[string]string)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field ranges and variable names
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// level returns the configured log level and whether one was set
func (c Config) level() (logging.Level, bool) {
	if c.LogLevel == "" {
		return logging.InfoLevel, false
	}
	return logging.ParseLevel(c.LogLevel), true
}
