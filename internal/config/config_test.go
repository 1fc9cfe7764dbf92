package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "project_tracker", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.Auth.BCryptCost)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.AI.BaseURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.AI.Model)
	assert.Equal(t, []string{"reminders", "default"}, cfg.Worker.Queues)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 12, cfg.Auth.BCryptCost)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "gsk-test", cfg.AI.APIKey)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	t.Setenv("RATE_LIMIT_ENABLED", "yep")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Auth.BCryptCost)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigProductionGuards(t *testing.T) {
	t.Run("postgres without password", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("JWT_SECRET", "real-secret")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("default jwt secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DB_DRIVER", "sqlite")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("fully configured", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_PASSWORD", "hunter2")
		t.Setenv("JWT_SECRET", "real-secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestAddressHelpers(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.GetServerAddr())
	assert.Equal(t, "localhost:6379", cfg.GetRedisAddr())
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=project_tracker")
	assert.Contains(t, cfg.GetDatabaseDSN(), "sslmode=disable")
}
