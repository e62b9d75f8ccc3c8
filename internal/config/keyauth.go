// Package config provides API key hashing for server authentication.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// KeyConfig holds configuration for API key hashing and verification.
// The server config stores only the bcrypt hash of the API key, so the
// plaintext key never appears in a file.
type KeyConfig struct {
	BcryptCost int
}

// NewKeyConfig creates a new key configuration from environment variables.
// It reads BCRYPT_COST (default: 12).
func NewKeyConfig() (*KeyConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}

	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &KeyConfig{BcryptCost: cost}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *KeyConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashKey hashes an API key using bcrypt for storage in config.
func (c *KeyConfig) HashKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash API key: %w", err)
	}
	return string(hash), nil
}

// VerifyKey verifies an API key against a stored bcrypt hash.
func (c *KeyConfig) VerifyKey(key, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(key)) == nil
}
