// SPDX-License-Identifier: MIT

// Package config provides YAML configuration for the regression engine and
// turns it into solver and cache options.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/bayeslin/cache"
	"github.com/katalvlaran/bayeslin/covariance"
	"github.com/katalvlaran/bayeslin/solver"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all configuration for the engine.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Numeric    NumericConfig    `yaml:"numeric"`
	Likelihood LikelihoodConfig `yaml:"likelihood"`
	Cache      CacheConfig      `yaml:"cache"`
}

// NumericConfig holds the tolerance and validation policy.
type NumericConfig struct {
	Epsilon          float64 `yaml:"epsilon"`
	ConditionWarning float64 `yaml:"condition_warning"`
	ValidateNaNInf   *bool   `yaml:"validate_nan_inf"`
}

// ValidateNaNInfOrDefault returns whether to scan inputs for NaN/Inf; defaults
// to true when unset.
func (n *NumericConfig) ValidateNaNInfOrDefault() bool {
	if n.ValidateNaNInf != nil {
		return *n.ValidateNaNInf
	}
	return solver.DefaultValidateNaNInf
}

// LikelihoodConfig selects the marginal-likelihood path used by
// (*Config).LnLike. Cached factorizations always take the Woodbury path.
type LikelihoodConfig struct {
	Woodbury bool `yaml:"woodbury"`
}

// CacheConfig holds factorization cache settings.
type CacheConfig struct {
	Capacity int `yaml:"capacity"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings the option constructors would panic on.
func (c *Config) Validate() error {
	eps := c.Numeric.Epsilon
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		return fmt.Errorf("numeric.epsilon %g: %w", eps, ErrInvalid)
	}
	if cw := c.Numeric.ConditionWarning; math.IsNaN(cw) || cw < 1 {
		return fmt.Errorf("numeric.condition_warning %g: %w", cw, ErrInvalid)
	}
	if c.Cache.Capacity < 1 {
		return fmt.Errorf("cache.capacity %d: %w", c.Cache.Capacity, ErrInvalid)
	}
	return nil
}

// SolverOptions converts the numeric settings into solver options logging to
// logger.
func (c *Config) SolverOptions(logger *zap.Logger) []solver.Option {
	nanInf := solver.WithNoValidateNaNInf()
	if c.Numeric.ValidateNaNInfOrDefault() {
		nanInf = solver.WithValidateNaNInf()
	}

	return []solver.Option{
		solver.WithEpsilon(c.Numeric.Epsilon),
		solver.WithConditionWarning(c.Numeric.ConditionWarning),
		nanInf,
		solver.WithLogger(logger),
	}
}

// NewCache builds a factorization cache from the cache and numeric settings.
func (c *Config) NewCache(logger *zap.Logger) *cache.Cache {
	return cache.New(
		cache.WithCapacity(c.Cache.Capacity),
		cache.WithLogger(logger),
		cache.WithSolverOptions(c.SolverOptions(logger)...),
	)
}

// LnLike is solver.LnLike with the path taken from likelihood.woodbury and
// the numeric settings applied. opts are appended after the configured ones.
func (c *Config) LnLike(logger *zap.Logger, a mat.Matrix, b mat.Vector, prior solver.Prior, data covariance.Spec, opts ...solver.Option) (float64, error) {
	all := append(c.SolverOptions(logger), opts...)

	return solver.LnLike(a, b, prior, data, c.Likelihood.Woodbury, all...)
}
