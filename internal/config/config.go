package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv loads the local .env file when present. A missing file is not
// an error; deployed environments set variables directly.
func LoadEnv() error {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("No .env file loaded: %v", err)
		return err
	}
	return nil
}

// GetEnv returns a required environment variable and stops the process
// when it is missing. Use only for hard startup requirements.
func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required but not set", key)
	}
	return value
}

// GetEnvOr returns the variable's value or the given fallback. The main
// service starts with optional credentials absent and fails the
// dependent operation at first use instead.
func GetEnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
