package config

import (
	"os"
	"strconv"

	"investigator/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server        ServerConfig
	Elasticsearch ElasticsearchConfig
	Database      DatabaseConfig
}

// ServerConfig holds HTTP API server settings
type ServerConfig struct {
	Port string
}

// ElasticsearchConfig holds search-index connection settings for the
// history loader and the status-data updater
type ElasticsearchConfig struct {
	Server string
	Index  string
	Size   int
}

// DatabaseConfig holds PostgreSQL settings for the database history source
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables.
// Only the pieces the chosen entry point needs are validated there;
// e.g. the API server never requires DATABASE_URL.
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Elasticsearch: ElasticsearchConfig{
			Server: getEnvOrDefault("ES_SERVER", ""),
			Index:  getEnvOrDefault("ES_INDEX", ""),
			Size:   getEnvIntOrDefault("ES_SIZE", 50),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}, nil
}

// RequireElasticsearch validates the search-index settings are present
func (c *Config) RequireElasticsearch() error {
	if c.Elasticsearch.Server == "" {
		return errors.ConfigInvalid("ES_SERVER is required")
	}
	if c.Elasticsearch.Index == "" {
		return errors.ConfigInvalid("ES_INDEX is required")
	}
	return nil
}

// RequireDatabase validates the database settings are present
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("DATABASE_URL is required")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
