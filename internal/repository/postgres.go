package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres implements the KV contract over a kv_blobs table in a
// PostgreSQL database, for deployments that keep journals server-side.
type Postgres struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgres creates a Postgres store using the provided *sql.DB.
// db must be a valid connection to a PostgreSQL instance carrying the
// kv_blobs schema (see internal/db).
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{DB: db}
}

// Get returns the blob stored under key.
//
//	ctx: context for cancellation and deadlines
//	key: the blob key
//
// Returns ErrNotFound when no row exists, or a wrapped error on failure.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.DB.QueryRowContext(ctx, `
		SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set inserts the blob under key, or overwrites it on conflict.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO kv_blobs (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes the row under key. Missing rows are a no-op.
func (p *Postgres) Delete(ctx context.Context, key string) error {
	_, err := p.DB.ExecContext(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
