package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Store backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type StoreConfig struct {
	Backend  string `mapstructure:"backend"`
	RedisURL string `mapstructure:"redis_url"`
	Postgres struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"postgres"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	JWTExpiry  time.Duration `mapstructure:"jwt_expiry"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Auth  AuthConfig  `mapstructure:"auth"`
	Log   LogConfig   `mapstructure:"log"`
}

// envOverrides are applied on top of the file config; CARESLOT_STORE_BACKEND
// and friends win over config.yml.
type envOverrides struct {
	StoreBackend string `envconfig:"STORE_BACKEND"`
	RedisURL     string `envconfig:"REDIS_URL"`
	PostgresDSN  string `envconfig:"POSTGRES_DSN"`
	JWTSecret    string `envconfig:"JWT_SECRET"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
}

// Load reads config.yml from the working directory or ./config, falls back
// to defaults when no file exists, and applies CARESLOT_* env overrides.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("store.backend", BackendMemory)
	viper.SetDefault("auth.jwt_expiry", 24*time.Hour)
	viper.SetDefault("auth.bcrypt_cost", 12)
	viper.SetDefault("log.level", "info")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("careslot", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.StoreBackend != "" {
		cfg.Store.Backend = env.StoreBackend
	}
	if env.RedisURL != "" {
		cfg.Store.RedisURL = env.RedisURL
	}
	if env.PostgresDSN != "" {
		cfg.Store.Postgres.DSN = env.PostgresDSN
	}
	if env.JWTSecret != "" {
		cfg.Auth.JWTSecret = env.JWTSecret
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}

	if err := cfg.validateStore(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis backend")
		}
	case BackendPostgres:
		if c.Store.Postgres.DSN == "" {
			return fmt.Errorf("store.postgres.dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
