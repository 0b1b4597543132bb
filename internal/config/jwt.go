package config

import "fmt"

// DefaultJWTExpirationHours is the lifetime of tokens minted by the token command
const DefaultJWTExpirationHours = 24

// AuthConfig holds configuration for bearer-token authentication of the API.
// Authentication is enabled only when JWTSecret is set.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"jwt_expiration_hours"`
}

// Enabled reports whether the API requires bearer tokens.
func (c *AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}

// normalize validates the configuration.
func (c *AuthConfig) normalize() error {
	if !c.Enabled() {
		return nil
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT expiration must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
