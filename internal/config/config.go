package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, sourced from the environment.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// FinnhubAPIKey may be empty; the price resolver then skips the realtime
	// tier and falls through to mock prices.
	FinnhubAPIKey string
}

// Load reads configuration from the environment, first loading a .env file if
// one is present. Missing keys fall back to development defaults.
func Load() *Config {
	// Best effort: absence of a .env file is not an error.
	_ = godotenv.Load()

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "paperbroker_user"),
		DBPassword:    getEnv("DB_PASSWORD", "paperbroker_password"),
		DBName:        getEnv("DB_NAME", "paperbroker"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		FinnhubAPIKey: os.Getenv("FINNHUB_API_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
