package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/oshokin/keypad-lock/internal/db"
)

// SQLiteRepository stores the credential as a row of the kv_store table.
// Writes go through the shared db.Worker.
type SQLiteRepository struct {
	db        *sql.DB
	writer    *dbpkg.Worker
	namespace string
}

// NewSQLiteRepository creates a repository over an opened and migrated database.
func NewSQLiteRepository(conn *sql.DB, writer *dbpkg.Worker, namespace string) *SQLiteRepository {
	return &SQLiteRepository{db: conn, writer: writer, namespace: namespace}
}

// Load returns the credential of the namespace.
func (r *SQLiteRepository) Load(ctx context.Context) (string, error) {
	var value string

	err := r.db.QueryRowContext(ctx, `
SELECT value FROM kv_store WHERE namespace = ? AND key = ?;
`, r.namespace, Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}

	return value, nil
}

// Save inserts or replaces the credential of the namespace.
func (r *SQLiteRepository) Save(ctx context.Context, value string) error {
	now := time.Now().UTC().UnixMilli()

	return r.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO kv_store(namespace, key, value, updated_at_ms)
VALUES (?, ?, ?, ?)
ON CONFLICT(namespace, key) DO UPDATE SET
  value = excluded.value,
  updated_at_ms = excluded.updated_at_ms;
`, r.namespace, Key, value, now); err != nil {
			return fmt.Errorf("save credential: %w", err)
		}

		return nil
	})
}
