package config

import "os"

// DatabaseConfig holds the relational store connection settings. MySQL is
// the production driver; tests open in-memory SQLite directly.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	// SQLite-specific path, used when Driver is "sqlite"
	Path string
}

// LoadDatabaseConfig reads the store settings from the environment.
// godotenv has already populated it from .env by the time this runs.
func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver:   getEnvWithDefault("DB_DRIVER", "mysql"),
		Host:     getEnvWithDefault("DB_HOST", "127.0.0.1"),
		Port:     getEnvWithDefault("DB_PORT", "3306"),
		User:     getEnvWithDefault("DB_USER", "root"),
		Password: getEnvWithDefault("DB_PASSWORD", ""),
		Name:     getEnvWithDefault("DB_NAME", "ai-receiption"),
		Path:     getEnvWithDefault("DB_PATH", "ai-receiption.db"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
