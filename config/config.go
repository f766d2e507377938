// Package config loads the service configuration from an optional
// YAML file with FUNDLENS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Listen          string  `mapstructure:"listen"`
	MongoURI        string  `mapstructure:"mongo_uri"`
	MongoDB         string  `mapstructure:"mongo_db"`
	ProviderBaseURL string  `mapstructure:"provider_base_url"`
	CronSpec        string  `mapstructure:"cron_spec"`
	CronTimezone    string  `mapstructure:"cron_timezone"`
	Workers         int     `mapstructure:"workers"`
	RateLimit       int     `mapstructure:"rate_limit"`
	BatchSize       int     `mapstructure:"batch_size"`
	StartingBalance float64 `mapstructure:"starting_balance"`
	LogLevel        string  `mapstructure:"log_level"`
	GeminiAPIKey    string  `mapstructure:"gemini_api_key"`
}

const (
	DefaultListen          = ":8080"
	DefaultMongoURI        = "mongodb://localhost:27017"
	DefaultMongoDB         = "mutual_funds"
	DefaultProviderBaseURL = "https://api.mfapi.in"
	// 07:00 IST, when the previous trading day's NAVs have settled.
	DefaultCronSpec        = "0 7 * * *"
	DefaultCronTimezone    = "Asia/Kolkata"
	DefaultWorkers         = 5
	DefaultRateLimit       = 20
	DefaultBatchSize       = 100
	DefaultStartingBalance = 100000
	DefaultLogLevel        = "info"
)

// Load reads the configuration file at path (optional when empty) and
// applies FUNDLENS_* environment overrides, e.g. FUNDLENS_MONGO_URI.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"listen":            DefaultListen,
		"mongo_uri":         DefaultMongoURI,
		"mongo_db":          DefaultMongoDB,
		"provider_base_url": DefaultProviderBaseURL,
		"cron_spec":         DefaultCronSpec,
		"cron_timezone":     DefaultCronTimezone,
		"workers":           DefaultWorkers,
		"rate_limit":        DefaultRateLimit,
		"batch_size":        DefaultBatchSize,
		"starting_balance":  DefaultStartingBalance,
		"log_level":         DefaultLogLevel,
		// Empty default keeps the env binding alive for the key.
		"gemini_api_key": "",
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("FUNDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.Listen == "" {
		return errors.New("listen address is empty")
	}
	if cfg.MongoURI == "" || !strings.HasPrefix(cfg.MongoURI, "mongodb") {
		return fmt.Errorf("invalid mongo_uri %q", cfg.MongoURI)
	}
	if cfg.MongoDB == "" {
		return errors.New("mongo_db is empty")
	}
	if !strings.HasPrefix(cfg.ProviderBaseURL, "http") {
		return fmt.Errorf("invalid provider_base_url %q", cfg.ProviderBaseURL)
	}
	if _, err := cron.ParseStandard(cfg.CronSpec); err != nil {
		return fmt.Errorf("invalid cron_spec %q: %w", cfg.CronSpec, err)
	}
	if cfg.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.RateLimit <= 0 {
		return fmt.Errorf("rate_limit must be positive, got %d", cfg.RateLimit)
	}
	if cfg.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.StartingBalance <= 0 {
		return fmt.Errorf("starting_balance must be positive, got %v", cfg.StartingBalance)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
