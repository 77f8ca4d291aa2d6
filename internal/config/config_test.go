package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every mapped variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		"IGDB_BASE_URL", "IGDB_API_KEY", "HTTP_TIMEOUT", "REDIS_ADDR",
		"CURSOR_TTL", "LOG_LEVEL", "LOG_PRETTY", "PORT", ConfigPathEnvVar,
	} {
		if value, ok := os.LookupEnv(name); ok {
			require.NoError(t, os.Unsetenv(name))
			t.Cleanup(func() { os.Setenv(name, value) })
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "igdb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("IGDB_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.IGDB.BaseURL)
	assert.Equal(t, "secret", cfg.IGDB.APIKey)
	assert.Equal(t, 30*time.Second, cfg.IGDB.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Redis.CursorTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.CursorStoreEnabled())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("IGDB_BASE_URL", "http://localhost:9000")
	t.Setenv("IGDB_API_KEY", "secret")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CURSOR_TTL", "2m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.IGDB.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.IGDB.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.CursorStoreEnabled())
	assert.Equal(t, 2*time.Minute, cfg.Redis.CursorTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
igdb:
  api_key: from-file
  timeout: 12s
redis:
  addr: redis:6379
server:
  port: 7000
`)
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.IGDB.APIKey)
	assert.Equal(t, 12*time.Second, cfg.IGDB.Timeout)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 7001, cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, DefaultBaseURL, cfg.IGDB.BaseURL, "defaults survive the file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("IGDB_API_KEY", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "IGDB_API_KEY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{name: "valid", modify: func(c *Config) {}},
		{name: "blank base url", modify: func(c *Config) { c.IGDB.BaseURL = " " }, wantErr: "igdb.base_url"},
		{name: "zero timeout", modify: func(c *Config) { c.IGDB.Timeout = 0 }, wantErr: "igdb.timeout"},
		{name: "negative ttl", modify: func(c *Config) { c.Redis.CursorTTL = -time.Second }, wantErr: "redis.cursor_ttl"},
		{name: "bad level", modify: func(c *Config) { c.Log.Level = "loud" }, wantErr: "log.level"},
		{name: "port too large", modify: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.IGDB.APIKey = "secret"
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Derived(t *testing.T) {
	cfg := defaultConfig()
	cfg.IGDB.APIKey = "secret"
	cfg.IGDB.Timeout = 3 * time.Second
	cfg.Log.Level = "warn"
	cfg.Log.Pretty = true

	clientCfg := cfg.Client()
	assert.Equal(t, DefaultBaseURL, clientCfg.BaseURL)
	assert.Equal(t, "secret", clientCfg.APIKey)
	require.NotNil(t, clientCfg.HTTPClient)

	logCfg := cfg.Logging()
	assert.Equal(t, "warn", string(logCfg.Level))
	assert.True(t, logCfg.Pretty)
	assert.NotNil(t, logCfg.Output)
}
