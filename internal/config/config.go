package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort      = "8080"
	defaultDSN       = "bikerental.db"
	defaultJWTSecret = "change-me-jwt-secret"
	defaultJWTTTL    = "24h"
	defaultLogLevel  = "info"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseDSN string
	JWTSecret   string
	JWTTTL      time.Duration
	LogLevel    string
	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file is picked up
// when present; missing keys fall back to dev defaults except JWT_SECRET in
// production.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:        getEnv("PORT", defaultPort),
		DatabaseDSN: getEnv("DATABASE_URL", defaultDSN),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
		LogLevel:    getEnv("LOG_LEVEL", defaultLogLevel),
	}

	ttl, err := time.ParseDuration(getEnv("JWT_TTL", defaultJWTTTL))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.JWTTTL = ttl

	origins := getEnv("CORS_ORIGINS", "http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.AppEnv == "prod" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
