package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minSecretLength = 32
)

type Config struct {
	Env            string
	Port           string
	RequestTimeout time.Duration

	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig

	// IdempotencySecret keys request fingerprints of stored replay
	// records. It defaults to the JWT secret.
	IdempotencySecret string

	NatsURL         string
	SendGridAPIKey  string
	MailFrom        string
	ProfileCacheTTL time.Duration

	LogLevel  string
	LogFormat string
}

type DatabaseConfig struct {
	Driver string // "postgres" or "sqlite"
	DSN    string
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type RedisConfig struct {
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            GetEnvAsString("APP_ENV", EnvDevelopment),
		Port:           GetEnvAsString("PORT", "8080"),
		RequestTimeout: GetEnvAsDuration("REQUEST_TIMEOUT", 10*time.Second),
		Database: DatabaseConfig{
			Driver: GetEnvAsString("DB_DRIVER", "sqlite"),
			DSN:    GetEnvAsString("DATABASE_URL", "blog.db"),
		},
		JWT: JWTConfig{
			Secret: GetEnvAsString("JWT_SECRET", ""),
			Issuer: GetEnvAsString("JWT_ISSUER", "blog-api"),
			TTL:    GetEnvAsDuration("JWT_TTL", 60*time.Minute),
		},
		Redis: RedisConfig{
			URL:      GetEnvAsString("REDIS_URL", ""),
			Host:     GetEnvAsString("REDIS_HOST", ""),
			Port:     GetEnvAsString("REDIS_PORT", "6379"),
			Password: GetEnvAsString("REDIS_PASSWORD", ""),
			DB:       GetEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			PerSecond: GetEnvAsFloat("LOGIN_RATE_LIMIT", 1),
			Burst:     GetEnvAsInt("LOGIN_RATE_BURST", 5),
		},
		NatsURL:         GetEnvAsString("NATS_URL", ""),
		SendGridAPIKey:  GetEnvAsString("SENDGRID_API_KEY", ""),
		MailFrom:        GetEnvAsString("MAIL_FROM", "no-reply@example.com"),
		ProfileCacheTTL: GetEnvAsDuration("PROFILE_CACHE_TTL", 10*time.Minute),
		LogLevel:        GetEnvAsString("LOG_LEVEL", "info"),
		LogFormat:       GetEnvAsString("LOG_FORMAT", "text"),
	}

	cfg.IdempotencySecret = GetEnvAsString("IDEMPOTENCY_SECRET", cfg.JWT.Secret)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.Env != EnvDevelopment && len(c.JWT.Secret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes outside development", minSecretLength))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_LIMIT and LOGIN_RATE_BURST must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
