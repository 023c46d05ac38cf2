// Package config loads service settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// DBSource is the Postgres DSN for the scenario library. Empty disables it.
	DBSource string
	Port     string
	Env      string
	LogLevel string
	// Strict makes the engine reject over-receipts and out-of-order dates.
	Strict bool
}

// Load reads the configuration. An explicit envPath must exist; otherwise a
// .env in the working directory is used when present.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}

	strict, err := parseBoolEnv("ENGINE_STRICT", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		DBSource: os.Getenv("DB_SOURCE"),
		Port:     getEnvOrDefault("SERVER_PORT", "8080"),
		Env:      getEnvOrDefault("ENVIRONMENT", "development"),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		Strict:   strict,
	}, nil
}

// RequireDB fails when no database is configured.
func (c *Config) RequireDB() error {
	if c.DBSource == "" {
		return fmt.Errorf("DB_SOURCE environment variable is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}
	return parsed, nil
}
