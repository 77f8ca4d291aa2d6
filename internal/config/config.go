// Package config loads the configuration of the IGDB binaries.
//
// Values are layered, later layers winning:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH, or igdb.yaml in the working directory)
//  3. environment variables
package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Sternrassler/igdb-api-client/pkg/client"
	"github.com/Sternrassler/igdb-api-client/pkg/cursor"
	"github.com/Sternrassler/igdb-api-client/pkg/logging"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultBaseURL is the public IGDB API endpoint.
const DefaultBaseURL = "https://api-endpoint.igdb.com"

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"igdb.yaml",
	"igdb.yml",
}

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration.
type Config struct {
	IGDB   IGDBConfig   `koanf:"igdb"`
	Redis  RedisConfig  `koanf:"redis"`
	Log    LogConfig    `koanf:"log"`
	Server ServerConfig `koanf:"server"`
}

// IGDBConfig configures the API client.
type IGDBConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
}

// RedisConfig configures the cursor store. An empty Addr disables it.
type RedisConfig struct {
	Addr      string        `koanf:"addr"`
	CursorTTL time.Duration `koanf:"cursor_ttl"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// ServerConfig configures the proxy HTTP server.
type ServerConfig struct {
	Port int `koanf:"port"`
}

func defaultConfig() *Config {
	return &Config{
		IGDB: IGDBConfig{
			BaseURL: DefaultBaseURL,
			Timeout: client.DefaultTimeout,
		},
		Redis: RedisConfig{
			CursorTTL: cursor.DefaultTTL,
		},
		Log: LogConfig{
			Level: string(logging.LevelInfo),
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// envMappings maps environment variables to config paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"igdb_base_url": "igdb.base_url",
	"igdb_api_key":  "igdb.api_key",
	"http_timeout":  "igdb.timeout",
	"redis_addr":    "redis.addr",
	"cursor_ttl":    "redis.cursor_ttl",
	"log_level":     "log.level",
	"log_pretty":    "log.pretty",
	"port":          "server.port",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Load builds the configuration from defaults, the config file and the
// environment, and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
// An explicit CONFIG_PATH must exist.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks the configuration for missing or out-of-range values.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.IGDB.BaseURL) == "" {
		errs = append(errs, errors.New("igdb.base_url (IGDB_BASE_URL) is required"))
	}
	if strings.TrimSpace(c.IGDB.APIKey) == "" {
		errs = append(errs, errors.New("igdb.api_key (IGDB_API_KEY) is required"))
	}
	if c.IGDB.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("igdb.timeout must be positive, got %s", c.IGDB.Timeout))
	}
	if c.Redis.CursorTTL <= 0 {
		errs = append(errs, fmt.Errorf("redis.cursor_ttl must be positive, got %s", c.Redis.CursorTTL))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.Log.Level)
	cfg.Pretty = c.Log.Pretty
	return cfg
}

// Client returns the IGDB client configuration.
func (c *Config) Client() client.Config {
	cfg := client.DefaultConfig(c.IGDB.BaseURL, c.IGDB.APIKey)
	cfg.HTTPClient = &http.Client{Timeout: c.IGDB.Timeout}
	return cfg
}

// CursorStoreEnabled reports whether a Redis address is configured.
func (c *Config) CursorStoreEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}
