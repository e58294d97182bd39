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

	assert.Equal(t, "inventra-frontend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "inventra_session", cfg.Session.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "lax", cfg.Session.SameSite)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "Inventra", cfg.Shop.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INVENTRA_APP_PORT", "4000")
	t.Setenv("INVENTRA_API_BASE_URL", "http://backend:9000/api")
	t.Setenv("INVENTRA_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, "http://backend:9000/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidateProduction(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.Session.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Session.Secure = true
		cfg.API.BaseURL = "https://backend.example.com/api"
		return cfg
	}

	t.Run("valid production config passes", func(t *testing.T) {
		assert.NoError(t, base().validate())
	})

	t.Run("missing session secret rejected", func(t *testing.T) {
		cfg := base()
		cfg.Session.Secret = ""
		assert.Error(t, cfg.validate())
	})

	t.Run("short session secret rejected", func(t *testing.T) {
		cfg := base()
		cfg.Session.Secret = "short"
		assert.Error(t, cfg.validate())
	})

	t.Run("insecure cookie rejected", func(t *testing.T) {
		cfg := base()
		cfg.Session.Secure = false
		assert.Error(t, cfg.validate())
	})

	t.Run("plain http backend rejected", func(t *testing.T) {
		cfg := base()
		cfg.API.BaseURL = "http://backend.example.com/api"
		assert.Error(t, cfg.validate())
	})

	t.Run("tls skip verify rejected", func(t *testing.T) {
		cfg := base()
		cfg.API.TLSSkipVerify = true
		assert.Error(t, cfg.validate())
	})
}

func TestValidateSameSite(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Session.SameSite = "bogus"
	assert.Error(t, cfg.validate())

	cfg.Session.SameSite = "none"
	cfg.Session.Secure = false
	assert.Error(t, cfg.validate())
}

func TestValidateSamplingRatio(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Telemetry.SamplingRatio = 1.5
	assert.Error(t, cfg.validate())
}
