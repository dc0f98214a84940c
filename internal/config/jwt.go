package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultTokenLifetimeHours = 24

// JWTConfig holds the signing material for API session tokens.
type JWTConfig struct {
	Secret        string
	LifetimeHours int
}

// NewJWTConfig reads JWT settings from the environment. JWT_SECRET is
// required whenever the HTTP server runs with auth enabled.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	lifetime := defaultTokenLifetimeHours
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", raw, err)
		}
		lifetime = parsed
	}

	cfg := &JWTConfig{Secret: secret, LifetimeHours: lifetime}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *JWTConfig) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt secret must not be empty")
	}
	if c.LifetimeHours < 1 {
		return fmt.Errorf("jwt expiration must be at least 1 hour, got %d", c.LifetimeHours)
	}
	return nil
}
