package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and passed explicitly into components;
// nothing reads the environment during request handling.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	SessionTTL       time.Duration
	CodeTTL          time.Duration
	TwoFactorEnabled bool
	BcryptCost       int

	ResendAPIKey string
	EmailFrom    string
	AppName      string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SessionTTL:       7 * 24 * time.Hour,
		CodeTTL:          10 * time.Minute,
		TwoFactorEnabled: os.Getenv("TWO_FACTOR_ENABLED") == "true",
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		AppName:          getEnv("APP_NAME", "StroyMonitor"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if raw := os.Getenv("CODE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse CODE_TTL: %w", err)
		}
		cfg.CodeTTL = ttl
	}
	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
