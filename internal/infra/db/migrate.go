package db

import (
	"database/sql"
	"fmt"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    link        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    pub_date    TIMESTAMP NOT NULL,
    source      TEXT NOT NULL,
    image_url   TEXT,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id          SERIAL PRIMARY KEY,
    title       TEXT NOT NULL,
    link        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    pub_date    TIMESTAMPTZ NOT NULL,
    source      TEXT NOT NULL,
    image_url   TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// MigrateUp creates the articles table and its indexes if they do not exist.
// The pub_date index serves every list query; the source index serves the
// by-source filter and the group-by aggregation.
func MigrateUp(database *sql.DB, driver string) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = sqliteSchema
	case DriverPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("unsupported storage driver %q", driver)
	}

	if _, err := database.Exec(schema); err != nil {
		return fmt.Errorf("create articles table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_pub_date ON articles(pub_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
	}
	for _, stmt := range indexes {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	return nil
}
