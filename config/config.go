// Package config loads the punched cards configuration with Viper.
//
// Sources in precedence order: defaults, an optional TOML file, then
// environment variables prefixed PUNCHEDCARDS_ with dots replaced by
// underscores (PUNCHEDCARDS_SWEEP_TOP_COUNT=2).
package config

import (
	"runtime"
	"strings"

	"github.com/klauspost/cpuid/v2"
	"github.com/spf13/viper"

	"github.com/neurlang/punchedcards/errors"
	"github.com/neurlang/punchedcards/trainer"
)

// Config is the complete configuration.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Sweep   SweepConfig   `mapstructure:"sweep"`
	Puncher PuncherConfig `mapstructure:"puncher"`
	Workers int           `mapstructure:"workers"`
	Log     LogConfig     `mapstructure:"log"`
}

type DataConfig struct {
	Directory string `mapstructure:"directory"`
	Threshold int    `mapstructure:"threshold"`

	// VerifyChecksums compares the files with the published MNIST digests
	VerifyChecksums bool `mapstructure:"verify_checksums"`
}

type SweepConfig struct {
	BitLengths []int `mapstructure:"bit_lengths"`
	TopCount   int   `mapstructure:"top_count"`
	Parallel   bool  `mapstructure:"parallel"`
}

type PuncherConfig struct {
	Seed int `mapstructure:"seed"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// DefaultWorkers is the number of logical cores.
func DefaultWorkers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.directory", "/tmp/mnist/")
	v.SetDefault("data.threshold", 128)
	v.SetDefault("data.verify_checksums", true)

	v.SetDefault("sweep.bit_lengths", append([]int(nil), trainer.DefaultBitLengths...))
	v.SetDefault("sweep.top_count", 1)
	v.SetDefault("sweep.parallel", false)

	v.SetDefault("puncher.seed", 0)

	v.SetDefault("workers", DefaultWorkers())

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

// New builds a Viper instance with defaults and environment binding. When
// path is not empty the TOML file at path is read.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("PUNCHEDCARDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return v, nil
}

// Load reads and validates the configuration.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates the configuration of v.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if len(c.Sweep.BitLengths) == 0 {
		return errors.Wrap(errors.ErrInvalidConfig, "sweep.bit_lengths cannot be empty")
	}
	for _, bl := range c.Sweep.BitLengths {
		if bl < 1 {
			return errors.Wrapf(errors.ErrInvalidConfig, "sweep.bit_lengths must be positive, got %d", bl)
		}
	}
	if c.Sweep.TopCount < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "sweep.top_count must be >= 1, got %d", c.Sweep.TopCount)
	}
	if c.Puncher.Seed < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "puncher.seed must be >= 0, got %d", c.Puncher.Seed)
	}
	if c.Workers < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "workers must be >= 1, got %d", c.Workers)
	}
	if c.Data.Threshold < 1 || c.Data.Threshold > 255 {
		return errors.Wrapf(errors.ErrInvalidConfig, "data.threshold must be within 1..255, got %d", c.Data.Threshold)
	}
	return nil
}

// Options converts the sweep settings for the trainer.
func (c *Config) Options() trainer.Options {
	return trainer.Options{
		BitLengths: c.Sweep.BitLengths,
		TopCount:   c.Sweep.TopCount,
		Seed:       c.Puncher.Seed,
		Workers:    c.Workers,
		Parallel:   c.Sweep.Parallel,
	}
}
