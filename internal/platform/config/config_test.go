package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8000", cfg.Addr)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("USERAPI_ADDR", ":9999")
	t.Setenv("USERAPI_DATABASE_URL", "postgres://localhost/users")
	t.Setenv("USERAPI_TOKEN_TTL", "1h")
	t.Setenv("USERAPI_REQUIRE_AUTH", "true")
	t.Setenv("USERAPI_LOG_LEVEL", "debug")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "postgres://localhost/users", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.RequireAuth)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_IgnoresGarbage(t *testing.T) {
	t.Setenv("USERAPI_TOKEN_TTL", "soon")
	t.Setenv("USERAPI_REQUIRE_AUTH", "yep")
	t.Setenv("USERAPI_LOG_LEVEL", "loud")

	cfg := FromEnv()

	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.RequireAuth)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}
