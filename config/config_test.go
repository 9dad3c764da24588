package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeBackend, cfg.Auth.Mode)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.ChallengeTTL)
	assert.Equal(t, 6, cfg.Auth.PasswordMinLength)
	assert.Equal(t, "http://localhost:8000/api", cfg.Backend.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.False(t, cfg.Redis.UseSentinel)
}

func TestAppConfigFromEnvironment(t *testing.T) {
	t.Setenv("AUTH_MODE", "stub")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("BACKEND_BASE_URL", "https://api.example.com/api")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_URI", "redis://cache.internal:6380")
	t.Setenv("STUB_AUTH_EMAIL", "admin@example.com")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeStub, cfg.Auth.Mode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "https://api.example.com/api", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "redis://cache.internal:6380", cfg.Redis.URI)
	assert.Equal(t, "admin@example.com", cfg.Auth.Stub.Email)
}

func TestAuthModeUnmarshalText(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("STUB")))
	assert.Equal(t, AuthModeStub, mode)

	require.NoError(t, mode.UnmarshalText([]byte("backend")))
	assert.Equal(t, AuthModeBackend, mode)

	assert.Error(t, mode.UnmarshalText([]byte("ldap")))
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth: AuthConfig{
			SessionTTL:        -time.Hour,
			ChallengeTTL:      0,
			PasswordMinLength: 0,
		},
		Backend: BackendConfig{Timeout: -time.Second},
	}
	cfg.Sanitize()

	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.Auth.ChallengeTTL)
	assert.Equal(t, 6, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestDevFlagWins(t *testing.T) {
	t.Setenv("DEV", "true")
	t.Setenv("NODE_ENV", "production")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
