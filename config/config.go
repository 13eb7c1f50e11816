package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Extractor ExtractorConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Batch     BatchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ExtractorConfig holds extraction-engine configuration
type ExtractorConfig struct {
	PatternTimeout time.Duration `mapstructure:"pattern_timeout"`
	Debug          bool          `mapstructure:"debug"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// BatchConfig bounds the batch extraction endpoint
type BatchConfig struct {
	MaxURLs     int `mapstructure:"max_urls"`
	Concurrency int `mapstructure:"concurrency"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shoplens/")

	v.SetEnvPrefix("SHOPLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"chrome-extension://*"})

	v.SetDefault("extractor.pattern_timeout", "50ms")
	v.SetDefault("extractor.debug", false)

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("ratelimit.per_ip", 100)

	v.SetDefault("batch.max_urls", 50)
	v.SetDefault("batch.concurrency", 8)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Extractor.PatternTimeout <= 0 {
		return fmt.Errorf("extractor pattern timeout must be positive, got: %s", config.Extractor.PatternTimeout)
	}
	if config.Extractor.PatternTimeout > time.Second {
		return fmt.Errorf("extractor pattern timeout above 1s defeats its purpose, got: %s", config.Extractor.PatternTimeout)
	}

	if config.Batch.MaxURLs <= 0 {
		return fmt.Errorf("batch max_urls must be positive, got: %d", config.Batch.MaxURLs)
	}
	if config.Batch.Concurrency <= 0 {
		return fmt.Errorf("batch concurrency must be positive, got: %d", config.Batch.Concurrency)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
