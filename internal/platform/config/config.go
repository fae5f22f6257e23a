// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Server configures the reference progress service.
type Server struct {
	Addr          string        `env:"PROGRESS_ADDR" envDefault:":8080"`
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	DocumentsBase string        `env:"DOCUMENTS_BASE_URL" envDefault:"/documents"`
}

// Client configures the wizard's connection to the progress API.
type Client struct {
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
}

// Cache selects where the wizard keeps its draft between runs.
type Cache struct {
	Backend string `env:"CACHE_BACKEND" envDefault:"file"` // file, redis, memory
	Dir     string `env:"CACHE_DIR" envDefault:".signup"`
}

// RedisConfig configures the optional Redis connection.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	Prefix       string        `env:"REDIS_PREFIX" envDefault:"signup:"`
	KeyTTL       time.Duration `env:"REDIS_KEY_TTL" envDefault:"720h"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Log configures the process logger.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text, json
}

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      Server
	Client      Client
	Cache       Cache
	Redis       RedisConfig
	Log         Log
}

// FromEnv parses the environment. Callers load any .env file first.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "file", "memory":
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}
	if c.Client.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.IsProduction() && c.Server.JWTSigningKey == "dev-secret-key-change-in-production" {
		return fmt.Errorf("JWT_SIGNING_KEY must be set in production")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}
