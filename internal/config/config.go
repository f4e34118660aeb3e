// Package config loads the service configuration from environment variables.
package config

import (
	"gridiron-feed/internal/infra/db"
	"gridiron-feed/pkg/config"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Port          int
	StorageDriver string
	SQLitePath    string
	DatabaseURL   string
	FeedsFile     string
	CORSOrigin    string
	CronSchedule  string
	StaticDir     string
	Version       string
}

// Load reads configuration from environment variables with sensible defaults.
// Invalid values fall back to their defaults with a warning rather than
// aborting startup.
func Load() Config {
	return Config{
		Port:          config.GetEnvInt("PORT", 3000),
		StorageDriver: config.GetEnvString("STORAGE_DRIVER", db.DriverSQLite),
		SQLitePath:    config.GetEnvString("SQLITE_PATH", "./data/articles.db"),
		DatabaseURL:   config.GetEnvString("DATABASE_URL", ""),
		FeedsFile:     config.GetEnvString("FEEDS_FILE", "./configs/feeds.yaml"),
		CORSOrigin:    config.GetEnvString("CORS_ORIGIN", "*"),
		CronSchedule:  config.GetEnvString("CRON_SCHEDULE", "*/30 * * * *"),
		StaticDir:     config.GetEnvString("STATIC_DIR", "./web"),
		Version:       config.GetEnvString("VERSION", "dev"),
	}
}

// DSN returns the connection string for the configured storage driver.
func (c Config) DSN() string {
	if c.StorageDriver == db.DriverPostgres {
		return c.DatabaseURL
	}
	return c.SQLitePath
}
