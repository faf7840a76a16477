package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"coinduct/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config holds all coind configuration.
type Config struct {
	// Fixpoint and proof engine
	Engine EngineConfig `yaml:"engine"`

	// Datalog oracle used to cross-check fixpoints
	Mangle MangleConfig `yaml:"mangle"`

	// Relation universe for the built-in games
	Universe UniverseConfig `yaml:"universe"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// UniverseConfig bounds the naturals the relation instance ranges over.
type UniverseConfig struct {
	Size int `yaml:"size"` // relations range over [0, size)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			MaxIterations: 4096,
			SymmetryDepth: 5,
		},

		Mangle: MangleConfig{
			FactLimit:    1000000,
			QueryTimeout: "30s",
		},

		Universe: UniverseConfig{
			Size: 8,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Numbers that do
// not parse are ignored.
func (c *Config) applyEnvOverrides() {
	if n, ok := envInt("COIND_MAX_ITERATIONS"); ok {
		c.Engine.MaxIterations = n
	}
	if n, ok := envInt("COIND_SYMMETRY_DEPTH"); ok {
		c.Engine.SymmetryDepth = n
	}
	if n, ok := envInt("COIND_UNIVERSE"); ok {
		c.Universe.Size = n
	}
	if level := os.Getenv("COIND_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetQueryTimeout returns the Mangle query timeout as a duration.
func (c *Config) GetQueryTimeout() time.Duration {
	d, err := time.ParseDuration(c.Mangle.QueryTimeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidLogFormats lists the accepted logging formats.
var ValidLogFormats = []string{"json", "text"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Engine.MaxIterations < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "engine.max_iterations must be positive, got %d", c.Engine.MaxIterations)
	}
	if c.Engine.SymmetryDepth < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "engine.symmetry_depth must not be negative, got %d", c.Engine.SymmetryDepth)
	}
	if c.Universe.Size < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "universe.size must be positive, got %d", c.Universe.Size)
	}
	if c.Mangle.FactLimit < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "mangle.fact_limit must not be negative, got %d", c.Mangle.FactLimit)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "invalid logging level: %s", c.Logging.Level),
			"valid levels: %v", ValidLogLevels)
	}
	if !contains(ValidLogFormats, c.Logging.Format) {
		return errors.WithHintf(
			errors.Wrapf(errors.ErrInvalidConfig, "invalid logging format: %s", c.Logging.Format),
			"valid formats: %v", ValidLogFormats)
	}
	return nil
}

func contains(valid []string, s string) bool {
	for _, v := range valid {
		if v == s {
			return true
		}
	}
	return false
}
