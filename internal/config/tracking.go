// Package config provides tracking token configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// TrackingConfig holds configuration for signed tracking and unsubscribe
// token generation and validation.
type TrackingConfig struct {
	Secret          string
	ExpirationHours int
}

// NewTrackingConfig creates a tracking configuration from environment
// variables. It reads TRACKING_SECRET (required) and
// TRACKING_EXPIRATION_HOURS (default: 720, thirty days).
func NewTrackingConfig() (*TrackingConfig, error) {
	secret := os.Getenv("TRACKING_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("TRACKING_SECRET is required but not set")
	}

	expirationStr := os.Getenv("TRACKING_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "720" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TRACKING_EXPIRATION_HOURS: %v", err)
	}

	config := &TrackingConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *TrackingConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("TRACKING_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("TRACKING_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
