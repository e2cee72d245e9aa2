package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "scamguard", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8000, cfg.Server.HTTPPort)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Equal(t, time.Hour, cfg.Analysis.CacheTTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCAMGUARD_AI_API_KEY", "test-key")
	t.Setenv("SCAMGUARD_REDIS_HOST", "redis.internal")
	t.Setenv("SCAMGUARD_APP_ENVIRONMENT", "production")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.AI.APIKey)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "production", cfg.App.Environment)
}
