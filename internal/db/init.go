// Package db opens and bootstraps the SQL databases backing the
// key-value store.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key TEXT PRIMARY KEY,
    value BYTEA NOT NULL
);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL
);
`

// InitPostgres opens a PostgreSQL connection, verifies it and applies
// the kv_blobs schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(pgSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// InitSQLite opens (creating if needed) a SQLite database at path and
// applies the kv_blobs schema.
func InitSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
