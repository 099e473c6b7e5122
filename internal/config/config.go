package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	JWTSecret  string
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	// A local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(GetEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
	}

	return &Config{
		Port:       GetEnv("PORT", "8081"),
		Env:        GetEnv("ENV", "development"),
		LogLevel:   GetEnv("LOG_LEVEL", "info"),
		JWTSecret:  GetEnv("JWT_SECRET", "dev-secret-change-me"),
		SessionTTL: ttl,
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
