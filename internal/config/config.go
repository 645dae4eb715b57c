/*
Package config handles loading and validating reason-hub-mcp configuration.

Configuration is resolved from three sources (highest priority first):
  1. Environment variables (REASON_HUB_* prefix)
  2. YAML config file (~/.reason-hub-mcp/config.yaml)
  3. Built-in defaults

Schema:

	factory_timeout_ms: 30000
	history_window: 20
	retention_days: 0
	db_path: ~/.reason-hub-mcp/history.db
	log:
	  path: ~/.reason-hub-mcp/logs/reason-hub.log
	  level: info
	  max_size_mb: 50
	  max_backups: 5
	  max_age_days: 14
	  compress: true
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultFactoryTimeoutMS is the caller-imposed timeout budget used when
	// a tool call does not supply its own.
	DefaultFactoryTimeoutMS = 30000

	// DefaultHistoryWindow is the number of tool invocations retained per
	// session for preset matching.
	DefaultHistoryWindow = 20

	// configDirName is the per-user directory holding config, database and logs.
	configDirName = ".reason-hub-mcp"
)

// Config represents the root configuration structure.
type Config struct {
	// FactoryTimeoutMS is the default timeout budget in milliseconds.
	FactoryTimeoutMS int64 `mapstructure:"factory_timeout_ms"`

	// HistoryWindow bounds the per-session tool history length.
	HistoryWindow int `mapstructure:"history_window"`

	// RetentionDays is the timing-sample retention in days (0 = keep forever).
	RetentionDays int `mapstructure:"retention_days"`

	// DBPath is the SQLite database location for timing samples.
	DBPath string `mapstructure:"db_path"`

	// Log configures the rotating application log.
	Log LogConfig `mapstructure:"log"`
}

// LogConfig configures the zap/lumberjack application log.
type LogConfig struct {
	// Path is the log file location. Stdout is owned by the stdio
	// transport, so logs never go there.
	Path string `mapstructure:"path"`

	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level"`

	// MaxSizeMB is the maximum size in megabytes before rotation.
	MaxSizeMB int `mapstructure:"max_size_mb"`

	// MaxBackups is the maximum number of rotated files to retain.
	MaxBackups int `mapstructure:"max_backups"`

	// MaxAgeDays is the maximum age in days of rotated files.
	MaxAgeDays int `mapstructure:"max_age_days"`

	// Compress enables gzip compression of rotated files.
	Compress bool `mapstructure:"compress"`
}

// Dir returns the per-user config directory (~/.reason-hub-mcp).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load resolves configuration from defaults, the optional config file,
// and environment variables.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dir)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("REASON_HUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file just means defaults; anything else is a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers the built-in defaults on a viper instance.
func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("factory_timeout_ms", DefaultFactoryTimeoutMS)
	v.SetDefault("history_window", DefaultHistoryWindow)
	v.SetDefault("retention_days", 0)
	v.SetDefault("db_path", filepath.Join(dir, "history.db"))
	v.SetDefault("log.path", filepath.Join(dir, "logs", "reason-hub.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.FactoryTimeoutMS <= 0 {
		return fmt.Errorf("factory_timeout_ms must be positive, got %d", c.FactoryTimeoutMS)
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("history_window must be positive, got %d", c.HistoryWindow)
	}
	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative, got %d", c.RetentionDays)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	return nil
}
