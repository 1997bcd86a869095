package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Registers the "sqlite" driver.
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = "./data/keypad-lock.db"

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 3 * time.Second

// Open creates the parent directory if needed, opens the database at path,
// checks connectivity and applies migrations.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	return open(ctx, DSN(path))
}

// DSN builds a modernc.org/sqlite DSN with the per-connection pragmas the
// store relies on.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)",
		path,
	)
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	// One connection: the lock is the only writer and SQLite serialises anyway.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err = conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err = Migrate(ctx, conn); err != nil {
		_ = conn.Close()

		return nil, err
	}

	return conn, nil
}
