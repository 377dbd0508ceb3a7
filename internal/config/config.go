// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DatabasePath string // SQLite database file for the player catalog
	CSVPath      string // Source CSV snapshot for ingestion
	CSVRowLimit  int    // Max rows to ingest, 0 = unlimited
	SampleSize   int    // Synthetic players generated when the CSV is unavailable
	LogLevel     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "./data/players.db"),
		CSVPath:      getEnv("CSV_PATH", "./dataset/player-data-full-2025-june.csv"),
		CSVRowLimit:  getEnvAsInt("CSV_ROW_LIMIT", 0),
		SampleSize:   getEnvAsInt("SAMPLE_SIZE", 200),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("SAMPLE_SIZE must not be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
