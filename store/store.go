package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

// Store is the transactional persistence layer for jobs and config.
//
// All Store methods execute under the database's serializable (or
// stronger) transaction semantics. Store does not itself implement
// retry policy or the domain state machine beyond the per-method state
// preconditions documented below — that belongs to package queue.
type Store struct {
	db *bun.DB
}

// Open opens (creating if absent) a SQLite-backed Store at path and
// ensures its schema exists.
//
// The connection pool is limited to a single connection and configured
// with WAL journaling and a busy_timeout pragma: SQLite serializes
// writers internally, and funnelling every write through one
// connection with a generous busy timeout turns transient contention
// into bounded latency instead of SQLITE_BUSY errors, exactly as
// queuectl's concurrency contract requires.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	if err := InitSchema(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewFromDB wraps an already-open, already-migrated *bun.DB. Used by
// tests that need an in-memory database.
func NewFromDB(db *bun.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
