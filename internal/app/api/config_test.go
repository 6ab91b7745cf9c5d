package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"ENVIRONMENT", "PORT", "POSTGRES_DSN", "REDIS_ADDR", "SESSION_TTL", "ALLOWED_ORIGINS", "PASSWORD_HASH_COST"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, EnvLocal, cfg.Environment)
	assert.Empty(t, cfg.PostgresDSN)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "session_token", cfg.SessionCookieName)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Nil(t, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("PASSWORD_HASH_COST", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, RedisConfig{Addr: "localhost:6379", DB: 2}, cfg.Redis)
	assert.Equal(t, 12, cfg.PasswordHashCost)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SESSION_TTL", "soon")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("PASSWORD_HASH_COST", "99")
	_, err = LoadConfig()
	require.ErrorContains(t, err, "PASSWORD_HASH_COST")
}
