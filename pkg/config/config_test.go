package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("SESSION_SECRET", "a-real-production-secret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_STORE", "MEMORY")
	t.Setenv("ALLOWED_ORIGINS", " https://app.example.com/ ,")
	t.Setenv("ENABLE_CURRICULUM_CACHE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.True(t, cfg.Session.Secure)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadRejectsDefaultSecretInProduction(t *testing.T) {
	t.Setenv("ENV", EnvProduction)

	_, err := Load()
	assert.ErrorIs(t, err, ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", DefaultSessionSecret)
	_, err = Load()
	assert.ErrorIs(t, err, ErrInsecureSessionSecret)

	t.Setenv("SESSION_SECRET", "")
	_, err = Load()
	assert.ErrorIs(t, err, ErrInsecureSessionSecret)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("-5s", time.Minute))
	assert.Equal(t, 3*time.Second, parseDuration("3s", time.Minute))
}
