package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config aggregates process configuration, read from environment variables and
// an optional local .env file. Env vars win.
type Config struct {
	App      App
	HTTP     HTTP
	Registry Registry
	Redis    Redis
	Audit    Audit
}

// App captures general application settings.
type App struct {
	Env  string // development, staging, production
	Name string
}

// HTTP captures server level configuration.
type HTTP struct {
	Addr string
}

// Registry configures access to the Companies House API.
type Registry struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration // per-call timeout for registry requests
	CacheTTL time.Duration // retention for cached registry responses
}

// Redis configures the optional response cache. An empty URL disables it.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Audit configures the audit trail. An empty DSN keeps events in memory.
type Audit struct {
	DSN         string
	AsyncBuffer int
}

// Load reads configuration so main stays lean. Expected names:
// APP_ENV, HTTP_ADDR, COMPANIES_HOUSE_API_KEY, REDIS_URL, AUDIT_DB_DSN, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file; env vars are the primary source

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "psc-gateway")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("COMPANIES_HOUSE_BASE_URL", "https://api.company-information.service.gov.uk")
	v.SetDefault("REGISTRY_TIMEOUT", "30s")
	v.SetDefault("REGISTRY_CACHE_TTL", "5m")
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")
	v.SetDefault("AUDIT_ASYNC_BUFFER", 0)

	cfg := &Config{
		App: App{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		HTTP: HTTP{
			Addr: v.GetString("HTTP_ADDR"),
		},
		Registry: Registry{
			APIKey:   v.GetString("COMPANIES_HOUSE_API_KEY"),
			BaseURL:  v.GetString("COMPANIES_HOUSE_BASE_URL"),
			Timeout:  v.GetDuration("REGISTRY_TIMEOUT"),
			CacheTTL: v.GetDuration("REGISTRY_CACHE_TTL"),
		},
		Redis: Redis{
			URL:          v.GetString("REDIS_URL"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
		},
		Audit: Audit{
			DSN:         v.GetString("AUDIT_DB_DSN"),
			AsyncBuffer: v.GetInt("AUDIT_ASYNC_BUFFER"),
		},
	}

	return cfg, nil
}
