// Package config reads the service configuration from environment
// variables. main loads a .env file first, so local development works
// without exporting anything.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env             string
	ListenAddr      string
	UpstreamBaseURL string
	SessionSecret   string
	SessionTTL      time.Duration
	DefaultSlug     string

	// Redis is optional; when unset the in-memory session store is used.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func Load() (*Config, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is empty")
	}

	ttl := 30 * time.Minute
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration (got %q)", v)
		}
		ttl = d
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("REDIS_DB must be a non-negative integer (got %q)", v)
		}
		redisDB = n
	}

	return &Config{
		Env:             getenv("ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":8080"),
		UpstreamBaseURL: getenv("UPSTREAM_BASE_URL", "http://localhost:3030/api"),
		SessionSecret:   secret,
		SessionTTL:      ttl,
		DefaultSlug:     getenv("DEFAULT_BUSINESS_SLUG", "intermedia"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
	}, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
