// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/tunila/internal/logging"
)

const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour

	// recommendedJWTSecretLen is the length below which a warning is logged at startup.
	recommendedJWTSecretLen = 32
)

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks the configuration for values the server cannot start with.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMongo:
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=mongo")
		}
		if c.Store.Mongo.Database == "" || c.Store.Mongo.Collection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION must not be empty")
		}
	case BackendBadger:
		if !c.Store.Badger.InMemory && c.Store.Badger.Path == "" {
			return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of: mongo, badger (got %q)", c.Store.Backend)
	}

	if c.Store.Breaker.Enabled {
		if c.Store.Breaker.FailureThreshold == 0 {
			return fmt.Errorf("STORE_BREAKER_FAILURES must be positive")
		}
		if c.Store.Breaker.Timeout <= 0 {
			return fmt.Errorf("STORE_BREAKER_TIMEOUT must be positive")
		}
	}
	if c.Store.HealthInterval <= 0 {
		return fmt.Errorf("STORE_HEALTH_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	if c.Recommend.DefaultLimit < 1 {
		return fmt.Errorf("RECOMMEND_LIMIT must be positive, got %d", c.Recommend.DefaultLimit)
	}
	if c.Recommend.MaxLimit < c.Recommend.DefaultLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must be >= RECOMMEND_LIMIT (%d)",
			c.Recommend.MaxLimit, c.Recommend.DefaultLimit)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case AuthModeNone:
	case AuthModeJWT:
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
		}
		if c.Security.JWTCookieName == "" {
			return fmt.Errorf("JWT_COOKIE_NAME must not be empty when AUTH_MODE is jwt")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt (got %q)", c.Security.AuthMode)
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// ShouldWarnAboutCORS reports a wildcard origin combined with credentialed auth.
func (c *Config) ShouldWarnAboutCORS() bool {
	if c.Security.AuthMode == AuthModeNone {
		return false
	}
	for _, o := range c.Security.CORSOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutJWTSecret reports a JWT secret shorter than recommended.
// Short secrets are accepted because tokens are issued by the existing auth service.
func (c *Config) ShouldWarnAboutJWTSecret() bool {
	return c.Security.AuthMode == AuthModeJWT && len(c.Security.JWTSecret) < recommendedJWTSecretLen
}
