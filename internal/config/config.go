package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
// Following 12-factor app principles, all config is loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Admin    AdminConfig
	Data     DataConfig
	Element  ElementConfig
	Session  SessionConfig
	SeedData bool
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AdminConfig struct {
	APIKeys []string // Valid API keys for the admin console endpoints
}

// DataConfig selects and configures the data synchronization backend.
type DataConfig struct {
	Backend       string // memory | redis | mysql
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
	MySQLDSN      string
	PollInterval  int // seconds, mysql change polling
}

// ElementConfig selects the theming/configuration backend.
type ElementConfig struct {
	Backend      string // memory | redis
	DefaultsFile string // optional YAML file overriding stock defaults
}

type SessionConfig struct {
	TTLMinutes   int
	SweepSeconds int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Admin: AdminConfig{
			APIKeys: getEnvAsSlice("ADMIN_API_KEYS", []string{"admintest"}),
		},
		Data: DataConfig{
			Backend:       getEnv("DATA_BACKEND", "memory"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			KeyPrefix:     getEnv("DATA_KEY_PREFIX", "burgerhouse"),
			MySQLDSN:      getEnv("MYSQL_DSN", ""),
			PollInterval:  getEnvAsInt("DATA_POLL_INTERVAL", 2),
		},
		Element: ElementConfig{
			Backend:      getEnv("ELEMENT_BACKEND", "memory"),
			DefaultsFile: getEnv("ELEMENT_DEFAULTS_FILE", ""),
		},
		Session: SessionConfig{
			TTLMinutes:   getEnvAsInt("SESSION_TTL_MINUTES", 120),
			SweepSeconds: getEnvAsInt("SESSION_SWEEP_SECONDS", 60),
		},
		SeedData: getEnvAsBool("SEED_SAMPLE_DATA", false),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Admin.APIKeys) == 0 {
		return fmt.Errorf("at least one admin API key must be configured")
	}

	switch c.Data.Backend {
	case "memory", "redis":
	case "mysql":
		if c.Data.MySQLDSN == "" {
			return fmt.Errorf("MYSQL_DSN is required for the mysql data backend")
		}
	default:
		return fmt.Errorf("invalid data backend: %s (must be memory, redis, or mysql)", c.Data.Backend)
	}

	switch c.Element.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("invalid element backend: %s (must be memory or redis)", c.Element.Backend)
	}

	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
