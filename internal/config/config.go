package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Google GoogleConfig `yaml:"google" mapstructure:"google"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Search SearchConfig `yaml:"search" mapstructure:"search"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Auth   AuthConfig   `yaml:"auth" mapstructure:"auth"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// GoogleConfig holds Google Maps web service API settings.
type GoogleConfig struct {
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs   int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// CacheConfig configures in-memory result caching.
type CacheConfig struct {
	LeadsTTLMinutes   int `yaml:"leads_ttl_minutes" mapstructure:"leads_ttl_minutes"`
	GeocodeTTLMinutes int `yaml:"geocode_ttl_minutes" mapstructure:"geocode_ttl_minutes"`
	SweepSecs         int `yaml:"sweep_secs" mapstructure:"sweep_secs"`
}

// SearchConfig configures lead discovery behavior.
type SearchConfig struct {
	PageDelaySecs int `yaml:"page_delay_secs" mapstructure:"page_delay_secs"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port              int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins    []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	RatePerMinute     int      `yaml:"rate_per_minute" mapstructure:"rate_per_minute"`
	RateBurst         int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	ShutdownGraceSecs int      `yaml:"shutdown_grace_secs" mapstructure:"shutdown_grace_secs"`
}

// AuthConfig configures the auth passthrough to the identity provider.
type AuthConfig struct {
	DevMode     bool   `yaml:"dev_mode" mapstructure:"dev_mode"`
	ProviderURL string `yaml:"provider_url" mapstructure:"provider_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets default to empty so env bindings resolve on Unmarshal.
	v.SetDefault("google.key", "")
	v.SetDefault("google.base_url", "https://maps.googleapis.com/maps/api")
	v.SetDefault("google.timeout_secs", 10)
	v.SetDefault("google.rate_per_second", 10.0)
	v.SetDefault("cache.leads_ttl_minutes", 60)
	v.SetDefault("cache.geocode_ttl_minutes", 1440)
	v.SetDefault("cache.sweep_secs", 300)
	v.SetDefault("search.page_delay_secs", 2)
	v.SetDefault("auth.provider_url", "")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "leadscout.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.rate_per_minute", 120)
	v.SetDefault("server.rate_burst", 30)
	v.SetDefault("server.shutdown_grace_secs", 10)
	v.SetDefault("auth.dev_mode", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that configuration required for the given mode is present.
// Modes: "serve" (HTTP API), "search" (pipeline only), "store" (persistence).
func (c *Config) Validate(mode string) error {
	var problems []string

	checkCommon := func() {
		if c.Google.Key == "" {
			problems = append(problems, "google.key is required")
		}
		if c.Google.RatePerSecond <= 0 {
			problems = append(problems, "google.rate_per_second must be > 0")
		}
		if c.Cache.LeadsTTLMinutes <= 0 {
			problems = append(problems, "cache.leads_ttl_minutes must be > 0")
		}
	}
	checkStore := func() {
		switch c.Store.Driver {
		case "sqlite", "postgres":
		default:
			problems = append(problems, "store.driver must be sqlite or postgres")
		}
		if c.Store.DatabaseURL == "" {
			problems = append(problems, "store.database_url is required")
		}
	}

	switch mode {
	case "serve":
		checkCommon()
		checkStore()
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
		if !c.Auth.DevMode && c.Auth.ProviderURL == "" {
			problems = append(problems, "auth.provider_url is required when dev_mode is off")
		}
	case "search":
		checkCommon()
	case "store":
		checkStore()
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
