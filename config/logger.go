// SPDX-License-Identifier: MIT

package config

import "go.uber.org/zap"

// NewLogger returns a zap logger. When debug is true, uses development config
// (human-readable, debug level); otherwise uses production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Logger builds the logger selected by c.Debug.
func (c *Config) Logger() (*zap.Logger, error) {
	return NewLogger(c.Debug)
}
