package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"database_url": "postgres://localhost:5432/banktracker",
		"port": 8080,
		"schedule": "0 6 * * *",
		"verbose": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/banktracker", cfg.DatabaseURL)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "0 6 * * *", cfg.Schedule)
	assert.True(t, cfg.Verbose)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"database_url": "postgres://file:5432/db", "port": 8080}`)

	t.Setenv("DATABASE_URL", "postgres://env:5432/db")
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env:5432/db", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadWithoutFileUsesEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("EDGAR_USER_AGENT", "Bank Tracker (ops@example.com)")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.GeminiAPIKey)
	assert.Equal(t, "Bank Tracker (ops@example.com)", cfg.EdgarUserAgent)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := &Config{Port: 70000}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestValidateRejectsBadDatabaseURL(t *testing.T) {
	cfg := &Config{DatabaseURL: "not a url"}
	assert.Error(t, cfg.Validate())
}
