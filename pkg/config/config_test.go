package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Should load defaults when nothing is set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "rosterd", cfg.Database.DBName)
		assert.True(t, cfg.Database.AutoMigrate)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.Equal(t, "development", cfg.Runtime.Environment)
	})

	t.Run("Should overlay environment variables onto defaults", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DATABASE_NAME", "rosterd_test")
		t.Setenv("DATABASE_SSL_MODE", "require")
		t.Setenv("CACHE_TTL", "1m")
		t.Setenv("CACHE_ENABLED", "false")
		t.Setenv("RUNTIME_LOG_LEVEL", "debug")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "rosterd_test", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.Cache.Enabled)
		assert.Equal(t, "debug", cfg.Runtime.LogLevel)
		// Untouched sections keep their defaults.
		assert.Equal(t, "localhost", cfg.Redis.Host)
	})

	t.Run("Should reject an invalid runtime environment", func(t *testing.T) {
		t.Setenv("RUNTIME_ENVIRONMENT", "qa")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("Should reject an out-of-range port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "70000")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestTransformEnvKey(t *testing.T) {
	t.Run("Should map section variables to koanf paths", func(t *testing.T) {
		assert.Equal(t, "database.ssl_mode", transformEnvKey("DATABASE_SSL_MODE"))
		assert.Equal(t, "server.port", transformEnvKey("SERVER_PORT"))
		assert.Equal(t, "cache.ttl", transformEnvKey("CACHE_TTL"))
		assert.Equal(t, "database.max_open_conns", transformEnvKey("DATABASE_MAX_OPEN_CONNS"))
	})

	t.Run("Should drop variables outside the known sections", func(t *testing.T) {
		assert.Empty(t, transformEnvKey("HOME"))
		assert.Empty(t, transformEnvKey("PATH"))
		assert.Empty(t, transformEnvKey("AWS_REGION"))
	})
}
