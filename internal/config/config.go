package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	CORS       CORSConfig
	CollectAPI CollectAPIConfig
	Ingest     IngestConfig
	Retention  RetentionConfig
	Secrets    SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// CollectAPIConfig holds market-data client configuration.
// APIKey may be empty, in which case the key stored encrypted in the
// system_setting table is used instead.
type CollectAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// IngestConfig holds the schedule for the periodic market-data fetch.
type IngestConfig struct {
	Enabled  bool
	Schedule string // robfig/cron spec, e.g. "@every 15m"
}

// RetentionConfig holds snapshot-pruning parameters.
type RetentionConfig struct {
	Enabled   bool
	Schedule  string // robfig/cron spec, e.g. "30 2 * * *"
	Days      int    // prune snapshots older than this many days
	KeepDaily bool   // keep one snapshot per instrument per calendar day
}

// SecretsConfig holds key material for values encrypted at rest.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/bist_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		CollectAPI: CollectAPIConfig{
			BaseURL: getEnv("COLLECT_API_BASE_URL", "https://api.collectapi.com"),
			APIKey:  getEnv("COLLECT_API_KEY", ""),
			Timeout: getEnvDuration("COLLECT_API_TIMEOUT", 15*time.Second),
		},
		Ingest: IngestConfig{
			Enabled:  getEnvBool("INGEST_ENABLED", true),
			Schedule: getEnv("INGEST_SCHEDULE", "@every 15m"),
		},
		Retention: RetentionConfig{
			Enabled:   getEnvBool("RETENTION_ENABLED", true),
			Schedule:  getEnv("RETENTION_SCHEDULE", "30 2 * * *"),
			Days:      getEnvInt("RETENTION_DAYS", 30),
			KeepDaily: getEnvBool("RETENTION_KEEP_DAILY", true),
		},
		Secrets: SecretsConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
