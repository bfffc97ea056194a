package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ITEMIMPORT_API_URL", "ITEMIMPORT_HTTP_TIMEOUT", "ITEMIMPORT_PAUSE_EVERY",
		"ITEMIMPORT_PAUSE", "ITEMIMPORT_MAX_ERRORS", "ITEMIMPORT_ERROR_LIMIT",
		"ITEMIMPORT_SKIP_STOCK", "ITEMIMPORT_ENV", "ITEMIMPORT_METRICS_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3001/api", cfg.CatalogURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 200, cfg.PauseEvery)
	assert.Equal(t, 500*time.Millisecond, cfg.PauseFor)
	assert.Equal(t, 20, cfg.MaxReportedErrors)
	assert.Equal(t, 200, cfg.ErrorMessageLimit)
	assert.False(t, cfg.SkipStock)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ITEMIMPORT_API_URL", "https://catalog.example.com/api")
	t.Setenv("ITEMIMPORT_HTTP_TIMEOUT", "3s")
	t.Setenv("ITEMIMPORT_PAUSE_EVERY", "50")
	t.Setenv("ITEMIMPORT_PAUSE", "1s")
	t.Setenv("ITEMIMPORT_SKIP_STOCK", "true")
	t.Setenv("ITEMIMPORT_ENV", "production")
	t.Setenv("ITEMIMPORT_ERROR_LIMIT", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com/api", cfg.CatalogURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 50, cfg.PauseEvery)
	assert.Equal(t, time.Second, cfg.PauseFor)
	assert.True(t, cfg.SkipStock)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 200, cfg.ErrorMessageLimit)
}

func TestLoadDotEnvFile(t *testing.T) {
	t.Setenv("ITEMIMPORT_API_URL", "")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ITEMIMPORT_MAX_ERRORS=5\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("ITEMIMPORT_MAX_ERRORS") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxReportedErrors)
}

func TestValidate(t *testing.T) {
	valid := Config{
		CatalogURL:        "http://localhost:3001/api",
		HTTPTimeout:       time.Second,
		ErrorMessageLimit: 200,
		Env:               "development",
	}
	require.NoError(t, valid.Validate())

	tests := map[string]func(c *Config){
		"bad url":      func(c *Config) { c.CatalogURL = "not a url" },
		"zero timeout": func(c *Config) { c.HTTPTimeout = 0 },
		"negative":     func(c *Config) { c.PauseEvery = -1 },
		"zero limit":   func(c *Config) { c.ErrorMessageLimit = 0 },
		"unknown env":  func(c *Config) { c.Env = "staging" },
	}
	for name, mutate := range tests {
		c := valid
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
