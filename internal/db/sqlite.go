package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

var sqliteSchema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS users (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       VARCHAR(255) NOT NULL,
		email      VARCHAR(255) NOT NULL UNIQUE,
		phone      VARCHAR(255) NOT NULL,
		is_active  BOOLEAN      NOT NULL DEFAULT 1,
		department VARCHAR(255) NOT NULL,
		password   VARCHAR(255) NOT NULL,
		created_at DATETIME     NOT NULL,
		updated_at DATETIME     NOT NULL
	)`,
}

// OpenSQLite opens (or creates) the database file at path and ensures the
// users table exists. ":memory:" is limited to one connection so every query
// sees the same database.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	if path == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	for _, stmt := range sqliteSchema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
	}

	log.Info().Str("path", path).Msg("Opened SQLite database")
	return conn, nil
}
