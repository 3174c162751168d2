// Package config loads server settings from the environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all server settings.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Billing BillingConfig
	Auth    AuthConfig
	Suggest SuggestConfig
	Events  EventsConfig
	Menu    MenuConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string
}

type StorageConfig struct {
	Backend    string
	SQLitePath string
	RedisURL   string
}

type BillingConfig struct {
	TaxRate        decimal.Decimal
	CurrencySymbol string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	SupervisorPINHash string
}

type SuggestConfig struct {
	APIKey        string
	Model         string
	Timeout       time.Duration
	RatePerMinute int
}

type EventsConfig struct {
	NATSURL string
}

type MenuConfig struct {
	SeedFile string
}

type LogConfig struct {
	Level string
}

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	devJWTSecret = "dev-secret-change-in-production"
)

// Load reads BISTRO_* environment variables and, if BISTRO_CONFIG names one,
// a config file. Keys use dots in files and underscores in the environment
// (storage.sqlite.path is BISTRO_STORAGE_SQLITE_PATH).
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BISTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.BindEnv("config"); err != nil {
		return nil, fmt.Errorf("failed to bind config env: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("storage.backend", BackendSQLite)
	v.SetDefault("storage.sqlite.path", "./data/bistro.db")
	v.SetDefault("storage.redis.url", "redis://localhost:6379/0")
	v.SetDefault("billing.tax_rate", "0.05")
	v.SetDefault("billing.currency_symbol", "₹")
	v.SetDefault("auth.jwt_secret", devJWTSecret)
	v.SetDefault("auth.token_ttl", "15m")
	v.SetDefault("auth.supervisor_pin_hash", "")
	v.SetDefault("suggest.api_key", "")
	v.SetDefault("suggest.model", "gemini-2.5-flash")
	v.SetDefault("suggest.timeout", "10s")
	v.SetDefault("suggest.rate_per_minute", 20)
	v.SetDefault("events.nats_url", "")
	v.SetDefault("menu.seed_file", "")
	v.SetDefault("log.level", "info")
}

func fromViper(v *viper.Viper) (*Config, error) {
	taxRate, err := decimal.NewFromString(v.GetString("billing.tax_rate"))
	if err != nil {
		return nil, fmt.Errorf("invalid billing.tax_rate %q: %w", v.GetString("billing.tax_rate"), err)
	}

	cfg := &Config{
		Server: ServerConfig{Port: v.GetString("server.port")},
		Storage: StorageConfig{
			Backend:    strings.ToLower(v.GetString("storage.backend")),
			SQLitePath: v.GetString("storage.sqlite.path"),
			RedisURL:   v.GetString("storage.redis.url"),
		},
		Billing: BillingConfig{
			TaxRate:        taxRate,
			CurrencySymbol: v.GetString("billing.currency_symbol"),
		},
		Auth: AuthConfig{
			JWTSecret:         v.GetString("auth.jwt_secret"),
			TokenTTL:          v.GetDuration("auth.token_ttl"),
			SupervisorPINHash: v.GetString("auth.supervisor_pin_hash"),
		},
		Suggest: SuggestConfig{
			APIKey:        v.GetString("suggest.api_key"),
			Model:         v.GetString("suggest.model"),
			Timeout:       v.GetDuration("suggest.timeout"),
			RatePerMinute: v.GetInt("suggest.rate_per_minute"),
		},
		Events: EventsConfig{NATSURL: v.GetString("events.nats_url")},
		Menu:   MenuConfig{SeedFile: v.GetString("menu.seed_file")},
		Log:    LogConfig{Level: v.GetString("log.level")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	var errs []error

	if c.Billing.TaxRate.IsNegative() || c.Billing.TaxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		errs = append(errs, fmt.Errorf("billing.tax_rate must be in [0, 1), got %s", c.Billing.TaxRate))
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite.path is required"))
		}
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			errs = append(errs, errors.New("storage.redis.url is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendSQLite, BackendRedis, c.Storage.Backend))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret is required"))
	}
	if c.Suggest.Timeout <= 0 {
		errs = append(errs, errors.New("suggest.timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// UsesDevSecret reports whether the JWT secret is the built-in development value.
func (c *Config) UsesDevSecret() bool {
	return c.Auth.JWTSecret == devJWTSecret
}
