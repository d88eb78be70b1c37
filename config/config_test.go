package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiry)
	assert.Equal(t, 20, cfg.Habits.MaxActive)
	assert.Equal(t, 30, cfg.Habits.CompletionWindowDays)
	assert.Equal(t, 30, cfg.Email.RetentionDays)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.MaxAttempts)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file:focus.db")
	t.Setenv("JWT_EXPIRY", "30m")
	t.Setenv("HABIT_MAX_ACTIVE", "3")
	t.Setenv("LOCK_TTL", "2s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EMAIL_WORKER_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:focus.db", cfg.Database.URL)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, 3, cfg.Habits.MaxActive)
	assert.Equal(t, 2*time.Second, cfg.Lock.TTL)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.False(t, cfg.Email.WorkerEnabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")
	t.Setenv("ENV", "development")
	t.Setenv("E2E_MODE", "")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiry)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestRateLimitDisabledInTestRuns(t *testing.T) {
	tests := []struct {
		name string
		env  string
		e2e  string
	}{
		{"test environment", "test", ""},
		{"e2e mode", "development", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", tt.env)
			t.Setenv("E2E_MODE", tt.e2e)

			assert.False(t, Load().RateLimit.Enabled)
		})
	}
}
