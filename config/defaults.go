// SPDX-License-Identifier: MIT

package config

import (
	"github.com/katalvlaran/bayeslin/cache"
	"github.com/katalvlaran/bayeslin/solver"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Numeric.Epsilon == 0 {
		cfg.Numeric.Epsilon = solver.DefaultEpsilon
	}
	if cfg.Numeric.ConditionWarning == 0 {
		cfg.Numeric.ConditionWarning = solver.DefaultConditionWarning
	}
	// ValidateNaNInf defaults to true when unset (nil).
	if cfg.Numeric.ValidateNaNInf == nil {
		v := solver.DefaultValidateNaNInf
		cfg.Numeric.ValidateNaNInf = &v
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = cache.DefaultCapacity
	}
}

// Default returns a Config with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}
