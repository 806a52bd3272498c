// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package recommend

import "fmt"

// Config contains engine configuration.
type Config struct {
	// Limits bounds the result size.
	Limits LimitsConfig `json:"limits"`
}

// LimitsConfig bounds the number of songs returned per request.
type LimitsConfig struct {
	// DefaultLimit applies when a request leaves Limit at zero.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps any requested Limit.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns the configuration the service ships with.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= limits.default_limit (%d)",
			c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
