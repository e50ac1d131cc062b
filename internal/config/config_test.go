// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfigJWTSecret tests the signing key requirement per environment.
func TestLoadConfigJWTSecret(t *testing.T) {
	t.Run("MissingSecretFailsInProduction", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("MissingSecretDefaultsInDevelopment", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("JWT_SECRET", "")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "dev-secret", cfg.JWTSecret)
	})

	t.Run("ExplicitSecretWinsInProduction", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("JWT_SECRET", "a-real-secret")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, "production", cfg.Env)
		assert.Equal(t, "a-real-secret", cfg.JWTSecret)
	})
}
