// Package config loads process configuration for the aes128gcm CLI:
// log level, default record size, and the share-link origin. It
// validates fail-fast the way the teacher's config package rejects a
// too-weak JWT secret before the server is allowed to start.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/nas-ai/aes128gcm/internal/aes128gcm"
)

const (
	envPrefix = "AES128GCMCTL"

	defaultLogLevel    = "info"
	defaultRecordSize  = 64 * 1024
	defaultShareOrigin = "https://localhost"
)

// Config holds the process-wide settings read from built-in defaults, an
// optional config file, and the environment (in that order of increasing
// precedence, per Viper's lookup order). Command-line flags are not bound
// here; the CLI applies its --log-level override after Load returns.
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	RecordSize  uint32 `mapstructure:"record_size"`
	ShareOrigin string `mapstructure:"share_origin"`
}

// Load reads configuration from the environment (prefixed AES128GCMCTL_)
// and, if configFile is non-empty, from that YAML file, then validates
// the result. An empty configFile skips the file entirely; a named file
// that is missing or malformed is an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("record_size", defaultRecordSize)
	v.SetDefault("share_origin", defaultShareOrigin)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate enforces the invariants the rest of the program assumes:
// a record size the codec can actually use, and a non-empty log level.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.LogLevel) == "" {
		return fmt.Errorf("config: CRITICAL: log_level must not be empty")
	}

	if c.RecordSize < aes128gcm.MinRecordSize {
		return fmt.Errorf("config: CRITICAL: record_size must be at least %d (got %d)",
			aes128gcm.MinRecordSize, c.RecordSize)
	}

	if strings.TrimSpace(c.ShareOrigin) == "" {
		return fmt.Errorf("config: CRITICAL: share_origin must not be empty")
	}

	return nil
}
