package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	CatalogMemory = "memory"
	CatalogSQLite = "sqlite"
)

type Config struct {
	Server        ServerConfig
	Worker        WorkerConfig
	Catalog       CatalogConfig
	Notifications NotificationsConfig
	Logging       LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      int
	RateLimit int // requests per second, shared by all clients
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type CatalogConfig struct {
	Backend string // "sqlite" or "memory"
}

type NotificationsConfig struct {
	Enabled bool
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "localhost"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			RateLimit: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Catalog: CatalogConfig{
			Backend: getEnv("CATALOG_BACKEND", CatalogSQLite),
		},
		Notifications: NotificationsConfig{
			Enabled: getEnvBool("NOTIFICATIONS_ENABLED", true),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s, got %d", c.Server.RateLimit)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1, got %d", c.Worker.Count)
	}
	if c.Worker.BufferSize < 0 {
		return fmt.Errorf("invalid worker buffer size: %d", c.Worker.BufferSize)
	}

	switch c.Catalog.Backend {
	case CatalogMemory, CatalogSQLite:
	default:
		return fmt.Errorf("invalid catalog backend: %s", c.Catalog.Backend)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}
