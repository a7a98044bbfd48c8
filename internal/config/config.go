// Package config loads the process configuration from the environment.
//
// An optional `.env` file is read first, then every known variable is mapped
// onto Config with koanf and checked with validator. Optional values get
// their defaults before validation.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Env      string `koanf:"app_env" validate:"required,oneof=development test staging production"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`

	MongoURI            string        `koanf:"mongodb_uri" validate:"required"`
	MongoDatabase       string        `koanf:"mongodb_database" validate:"required"`
	MongoConnectTimeout time.Duration `koanf:"mongodb_connect_timeout" validate:"gt=0"`
	MongoRetryAttempts  int           `koanf:"mongodb_retry_attempts" validate:"min=1,max=20"`
	MongoRetryInterval  time.Duration `koanf:"mongodb_retry_interval" validate:"gte=0"`

	AllowedOrigins string `koanf:"allowed_origins"`

	JWTSecret string        `koanf:"jwt_secret"`
	JWTExpiry time.Duration `koanf:"jwt_expiry" validate:"gt=0"`

	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gt=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"min=1"`

	SMTPHost     string `koanf:"smtp_host"`
	SMTPPort     int    `koanf:"smtp_port" validate:"min=1,max=65535"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`
	SMTPFrom     string `koanf:"smtp_from" validate:"omitempty,email"`
}

var knownKeys = map[string]struct{}{}

func init() {
	for _, key := range []string{
		"app_env", "log_level", "port",
		"mongodb_uri", "mongodb_database", "mongodb_connect_timeout", "mongodb_retry_attempts", "mongodb_retry_interval",
		"allowed_origins", "jwt_secret", "jwt_expiry", "rate_limit_rps", "rate_limit_burst",
		"smtp_host", "smtp_port", "smtp_username", "smtp_password", "smtp_from",
	} {
		knownKeys[key] = struct{}{}
	}
}

func defaults() Config {
	return Config{
		Env:                 "development",
		LogLevel:            "info",
		Port:                5000,
		MongoDatabase:       "petlove",
		MongoConnectTimeout: 10 * time.Second,
		MongoRetryAttempts:  3,
		MongoRetryInterval:  2 * time.Second,
		AllowedOrigins:      "*",
		JWTExpiry:           24 * time.Hour,
		RateLimitRPS:        10,
		RateLimitBurst:      20,
		SMTPPort:            587,
	}
}

// Load reads the environment into a validated Config.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := knownKeys[key]; !ok {
			return ""
		}
		if os.Getenv(s) == "" {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != ""
}
