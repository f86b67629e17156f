package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "BACKEND_URL", "NEXT_PUBLIC_BACKEND_URL",
		"BACKEND_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "GATEWAY_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Zero(t, cfg.Backend.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "http://localhost:8080", cfg.Client.GatewayURL)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "127.0.0.1:9090")
	t.Setenv("CORS_ORIGINS", "http://a.test, https://b.test ,")
	t.Setenv("BACKEND_URL", "https://quotes.internal")
	t.Setenv("BACKEND_TIMEOUT", "45s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "https://quotes.internal", cfg.Backend.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadLegacyBackendVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEXT_PUBLIC_BACKEND_URL", "http://legacy:8000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://legacy:8000", cfg.Backend.BaseURL)

	t.Setenv("BACKEND_URL", "http://preferred:8000")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://preferred:8000", cfg.Backend.BaseURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":            "80 80",
		"BACKEND_URL":     "localhost:8000",
		"BACKEND_TIMEOUT": "soon",
		"LOG_LEVEL":       "chatty",
		"LOG_FORMAT":      "xml",
		"GATEWAY_URL":     "ftp://gateway",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_TIMEOUT", "-1s")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadClientIgnoresGatewaySettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKEND_TIMEOUT", "soon")
	t.Setenv("LOG_FORMAT", "xml")
	t.Setenv("PORT", "80 80")
	t.Setenv("GATEWAY_URL", "http://gateway:9000")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "http://gateway:9000", cfg.GatewayURL)

	_, err = Load()
	assert.Error(t, err)
}

func TestLoadClientRejectsBadGatewayURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("GATEWAY_URL", "ftp://gateway")
	_, err := LoadClient()
	assert.Error(t, err)
}
