// Package config loads cdpwalk settings from an optional YAML file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the command.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatSVG   = "svg"
)

// Environment overrides.
const (
	EnvLogLevel = "CDPWALK_LOG_LEVEL"
	EnvWalkers  = "CDPWALK_WALKERS"
	EnvWorkers  = "CDPWALK_WORKERS"
	EnvSeed     = "CDPWALK_SEED"
	EnvDB       = "CDPWALK_DB"
	EnvFormat   = "CDPWALK_FORMAT"
)

// Config holds resolved settings.
type Config struct {
	LogLevel string

	Walkers  int
	Workers  int
	Seed     int64
	MaxSteps int
	Timeout  time.Duration

	Lower int
	Upper int
	Right float64

	Format    string
	OutputDir string

	StorePath    string
	StoreEnabled bool
}

type fileConfig struct {
	LogLevel string `yaml:"log_level"`

	Simulation struct {
		Walkers  int    `yaml:"walkers"`
		Workers  int    `yaml:"workers"`
		Seed     int64  `yaml:"seed"`
		MaxSteps int    `yaml:"max_steps"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"simulation"`

	Lattice struct {
		Lower *int     `yaml:"lower"`
		Upper *int     `yaml:"upper"`
		Right *float64 `yaml:"right"`
	} `yaml:"lattice"`

	Output struct {
		Format string `yaml:"format"`
		Dir    string `yaml:"dir"`
	} `yaml:"output"`

	Store struct {
		Path    string `yaml:"path"`
		Enabled *bool  `yaml:"enabled"`
	} `yaml:"store"`
}

// Default returns the built-in settings: 1000 walkers on [1, 10] with r = 0.6.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		Walkers:      1000,
		Workers:      0,
		Timeout:      10 * time.Minute,
		Lower:        1,
		Upper:        10,
		Right:        0.6,
		Format:       FormatTable,
		OutputDir:    ".",
		StorePath:    "cdpwalk.db",
		StoreEnabled: true,
	}
}

// Load reads path (when non-empty) and applies environment overrides. The
// result is not validated: callers apply their own overrides (flags) first
// and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		apply(cfg, &fc)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func apply(cfg *Config, fc *fileConfig) {
	if s := strings.TrimSpace(fc.LogLevel); s != "" {
		cfg.LogLevel = s
	}
	if fc.Simulation.Walkers > 0 {
		cfg.Walkers = fc.Simulation.Walkers
	}
	if fc.Simulation.Workers > 0 {
		cfg.Workers = fc.Simulation.Workers
	}
	cfg.Seed = fc.Simulation.Seed
	if fc.Simulation.MaxSteps > 0 {
		cfg.MaxSteps = fc.Simulation.MaxSteps
	}
	cfg.Timeout = parseDuration(fc.Simulation.Timeout, cfg.Timeout)

	if fc.Lattice.Lower != nil {
		cfg.Lower = *fc.Lattice.Lower
	}
	if fc.Lattice.Upper != nil {
		cfg.Upper = *fc.Lattice.Upper
	}
	if fc.Lattice.Right != nil {
		cfg.Right = *fc.Lattice.Right
	}

	if s := strings.TrimSpace(strings.ToLower(fc.Output.Format)); s != "" {
		cfg.Format = s
	}
	if s := strings.TrimSpace(fc.Output.Dir); s != "" {
		cfg.OutputDir = s
	}

	if s := strings.TrimSpace(fc.Store.Path); s != "" {
		cfg.StorePath = s
	}
	if fc.Store.Enabled != nil {
		cfg.StoreEnabled = *fc.Store.Enabled
	}
}

func applyEnv(cfg *Config) error {
	if s := strings.TrimSpace(os.Getenv(EnvLogLevel)); s != "" {
		cfg.LogLevel = s
	}
	if s := strings.TrimSpace(os.Getenv(EnvWalkers)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWalkers, err)
		}
		cfg.Walkers = n
	}
	if s := strings.TrimSpace(os.Getenv(EnvWorkers)); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if s := strings.TrimSpace(os.Getenv(EnvSeed)); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = n
	}
	if s := strings.TrimSpace(os.Getenv(EnvDB)); s != "" {
		cfg.StorePath = s
	}
	if s := strings.TrimSpace(strings.ToLower(os.Getenv(EnvFormat))); s != "" {
		cfg.Format = s
	}

	return nil
}

// parseDuration returns def on empty input, parse errors or non-positive values.
func parseDuration(s string, def time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}

	return d
}

// Validate checks value ranges; flag overrides should be validated again.
func (c *Config) Validate() error {
	if c.Walkers <= 0 {
		return fmt.Errorf("simulation.walkers must be positive, got %d", c.Walkers)
	}
	if c.Workers < 0 {
		return fmt.Errorf("simulation.workers must be >= 0, got %d", c.Workers)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("simulation.max_steps must be >= 0, got %d", c.MaxSteps)
	}
	if c.Lower >= c.Upper {
		return fmt.Errorf("lattice.lower must be < lattice.upper, got %d >= %d", c.Lower, c.Upper)
	}
	if math.IsNaN(c.Right) || c.Right < 0 || c.Right > 1 {
		return fmt.Errorf("lattice.right must be in [0, 1], got %v", c.Right)
	}
	switch c.Format {
	case FormatTable, FormatCSV, FormatJSON, FormatSVG:
		// valid
	default:
		return fmt.Errorf("output.format must be table, csv, json or svg, got %q", c.Format)
	}
	if c.StoreEnabled && c.StorePath == "" {
		return fmt.Errorf("store.path required when store is enabled")
	}

	return nil
}
