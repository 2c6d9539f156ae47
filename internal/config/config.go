// Package config loads ordo's YAML configuration with environment overrides.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values applied to missing fields
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8001
	DefaultBusyTimeout = 5 * time.Second
	DefaultOpTimeout   = 5 * time.Second
	DefaultMaxConns    = 4
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// DefaultAllowedOrigins are the CORS origins allowed when none are configured
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3002",
	"http://localhost:5173",
	"http://localhost:8080",
	"https://*.railway.app",
}

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Engine   EngineConfig   `yaml:"engine"`
	Retry    RetryConfig    `yaml:"retry"`
	Log      LogConfig      `yaml:"log"`
	Theme    Theme          `yaml:"theme"`
}

// DatabaseConfig locates the SQLite file and tunes its pool
type DatabaseConfig struct {
	Path         string        `yaml:"path"` // empty means ~/.ordo/board.db
	BusyTimeout  time.Duration `yaml:"busy_timeout"`
	MaxOpenConns int           `yaml:"max_open_conns"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Addr returns host:port for net.Listen
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// EngineConfig bounds every position operation, lock waits included
type EngineConfig struct {
	OpTimeout time.Duration `yaml:"op_timeout"`
}

// RetryConfig controls how contended writes are retried. MaxRetries 0
// disables retries.
type RetryConfig struct {
	InitialInterval time.Duration `yaml:"initial_interval"`
	MaxElapsedTime  time.Duration `yaml:"max_elapsed_time"`
	MaxRetries      *uint64       `yaml:"max_retries"`
}

// LogConfig selects the slog level, handler and destination
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // empty logs to stderr
}

// Default returns a config with every field set to its default
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the config at path, or the default location when path is empty.
// A missing file yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := getConfigPath()
		if err == nil {
			path = p
		}
	}

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to path, creating its directory
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := getConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects values no default can repair
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be: text, json)", c.Log.Format)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be: debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "ordo", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "ordo", "config.yaml"), nil
}

// applyEnv overrides file values with ORDO_* environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("ORDO_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("ORDO_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("ORDO_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ORDO_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("ORDO_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ORDO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Database.BusyTimeout <= 0 {
		c.Database.BusyTimeout = DefaultBusyTimeout
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = DefaultMaxConns
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if c.Engine.OpTimeout <= 0 {
		c.Engine.OpTimeout = DefaultOpTimeout
	}
	if c.Retry.InitialInterval <= 0 {
		c.Retry.InitialInterval = 20 * time.Millisecond
	}
	if c.Retry.MaxElapsedTime <= 0 {
		c.Retry.MaxElapsedTime = 2 * time.Second
	}
	if c.Retry.MaxRetries == nil {
		n := uint64(8)
		c.Retry.MaxRetries = &n
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
	c.Theme.ApplyDefaults()
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
