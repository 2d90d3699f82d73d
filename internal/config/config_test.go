package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 60*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "blog-api", cfg.JWT.Issuer)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("APP_ENV", EnvProduction)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://blog@localhost/blog")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOGIN_RATE_LIMIT", "0.5")
	t.Setenv("IDEMPOTENCY_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 0.5, cfg.RateLimit.PerSecond)
	assert.Equal(t, cfg.JWT.Secret, cfg.IdempotencySecret)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Env:       EnvDevelopment,
		Database:  DatabaseConfig{Driver: "sqlite", DSN: "blog.db"},
		JWT:       JWTConfig{Secret: "short", TTL: time.Hour},
		RateLimit: RateLimitConfig{PerSecond: 1, Burst: 5},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }},
		{"short secret in production", func(c *Config) { c.Env = EnvProduction }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"non-positive ttl", func(c *Config) { c.JWT.TTL = 0 }},
		{"zero burst", func(c *Config) { c.RateLimit.Burst = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	t.Setenv("CONFIG_TEST_INT", "not-a-number")
	t.Setenv("CONFIG_TEST_DURATION", "soon")
	t.Setenv("CONFIG_TEST_FLOAT", "  2.5 ")
	t.Setenv("CONFIG_TEST_BLANK", "   ")

	assert.Equal(t, 7, GetEnvAsInt("CONFIG_TEST_INT", 7))
	assert.Equal(t, time.Second, GetEnvAsDuration("CONFIG_TEST_DURATION", time.Second))
	assert.Equal(t, "x", GetEnvAsString("CONFIG_TEST_UNSET", "x"))
	assert.Equal(t, "x", GetEnvAsString("CONFIG_TEST_BLANK", "x"))
	assert.Equal(t, 2.5, GetEnvAsFloat("CONFIG_TEST_FLOAT", 1))
}
