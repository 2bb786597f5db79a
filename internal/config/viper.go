// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Published spreadsheet exports used when no feed URL is configured.
const (
	DefaultTransactionsURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRQeYLdJAJBvNdCTmLQ_f2S3VKn7Lu_oUEJDQvELH3dEZ5cTXvmrW6WvflHAWQoye9h0MAauWKzqvwo/pub?gid=0&single=true&output=csv"
	DefaultStoriesURL      = "https://docs.google.com/spreadsheets/d/e/2PACX-1vRQeYLdJAJBvNdCTmLQ_f2S3VKn7Lu_oUEJDQvELH3dEZ5cTXvmrW6WvflHAWQoye9h0MAauWKzqvwo/pub?gid=1511241343&single=true&output=csv"
)

// EnvPrefix prefixes every environment override, e.g. RELIEF_FEEDS_USE_MOCK_DATA.
const EnvPrefix = "RELIEF"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Feeds struct {
		TransactionsURL string `mapstructure:"transactions_url" yaml:"transactions_url"`
		StoriesURL      string `mapstructure:"stories_url" yaml:"stories_url"`
		TimeoutSeconds  int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		MaxBytes        int64  `mapstructure:"max_bytes" yaml:"max_bytes"`
		UseMockData     bool   `mapstructure:"use_mock_data" yaml:"use_mock_data"`
	} `mapstructure:"feeds" yaml:"feeds"`

	Media struct {
		ProbeThumbnails bool `mapstructure:"probe_thumbnails" yaml:"probe_thumbnails"`
	} `mapstructure:"media" yaml:"media"`

	Cache struct {
		TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
		RedisURL   string `mapstructure:"redis_url" yaml:"redis_url"`
	} `mapstructure:"cache" yaml:"cache"`

	Columns struct {
		AliasesFile string `mapstructure:"aliases_file" yaml:"aliases_file"`
	} `mapstructure:"columns" yaml:"columns"`

	Ledger struct {
		Currency string `mapstructure:"currency" yaml:"currency"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Server struct {
		Addr           string   `mapstructure:"addr" yaml:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
		RateLimit      float64  `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second, 0 disables
		RateBurst      int      `mapstructure:"rate_burst" yaml:"rate_burst"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile behaves like InitializeConfig but reads the given file
// instead of searching the standard locations when file is not empty.
func InitializeConfigFile(file string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.relief-ledger")
		v.AddConfigPath(".relief-ledger")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// REDIS_URL is the conventional unprefixed name on hosting platforms
	if err := v.BindEnv("cache.redis_url", EnvPrefix+"_CACHE_REDIS_URL", "REDIS_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind REDIS_URL environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("feeds.transactions_url", DefaultTransactionsURL)
	v.SetDefault("feeds.stories_url", DefaultStoriesURL)
	v.SetDefault("feeds.timeout_seconds", 30)
	v.SetDefault("feeds.max_bytes", 10<<20)
	v.SetDefault("feeds.use_mock_data", false)

	v.SetDefault("media.probe_thumbnails", false)

	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cache.redis_url", "")

	v.SetDefault("columns.aliases_file", "")

	v.SetDefault("ledger.currency", "LKR")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 20.0)
	v.SetDefault("server.rate_burst", 40)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	for name, raw := range map[string]string{
		"feeds.transactions_url": config.Feeds.TransactionsURL,
		"feeds.stories_url":      config.Feeds.StoriesURL,
	} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an absolute http(s) URL, got: %s", name, raw)
		}
	}

	if config.Feeds.TimeoutSeconds < 1 || config.Feeds.TimeoutSeconds > 300 {
		return fmt.Errorf("feeds.timeout_seconds must be between 1 and 300, got: %d", config.Feeds.TimeoutSeconds)
	}

	if config.Feeds.MaxBytes < 1 {
		return fmt.Errorf("feeds.max_bytes must be positive, got: %d", config.Feeds.MaxBytes)
	}

	if config.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must not be negative, got: %d", config.Cache.TTLSeconds)
	}

	if len(config.Ledger.Currency) != 3 {
		return fmt.Errorf("ledger.currency must be a 3-letter code, got: %s", config.Ledger.Currency)
	}

	if config.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative, got: %f", config.Server.RateLimit)
	}
	if config.Server.RateLimit > 0 && config.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be at least 1 when rate limiting, got: %d", config.Server.RateBurst)
	}

	return nil
}

// FeedTimeout returns the per-request feed timeout.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feeds.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long a loaded snapshot is served; 0 disables caching.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
