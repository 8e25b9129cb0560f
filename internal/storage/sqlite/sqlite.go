// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/hamisi99-03/BusinessWebsite/internal/storage"
)

// Ensure both views implement the storage interfaces.
var (
	_ storage.Store = (*SQLiteStore)(nil)
	_ storage.Tx    = (*sqliteTx)(nil)
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx,
// letting the entity methods in this package serve both views.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn carries the entity read/write methods over a querier.
type conn struct {
	q querier
}

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	conn
	db *sql.DB
}

// sqliteTx is the transactional view handed to Mutate callbacks.
type sqliteTx struct {
	conn
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys so order deletion cascades to items, payments, and debts
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{conn: conn{q: db}, db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Mutate runs fn inside a single transaction. SQLite serializes writers, so
// the read-validate-write sequences inside fn cannot interleave with other
// mutations on the same rows.
func (s *SQLiteStore) Mutate(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteTx{conn: conn{q: tx}}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
