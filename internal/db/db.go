package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a process-local, non-durable store.
const MemoryPath = ":memory:"

// DSN adds the per-connection pragmas to path. The driver runs them on every
// connection it opens, so a recycled connection keeps foreign keys on and
// parent_id ON DELETE CASCADE keeps removing plan subtrees.
func DSN(path string) string {
	dsn := path + "?_pragma=foreign_keys(1)"
	if path != MemoryPath {
		dsn += "&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	return dsn
}

// OpenDB opens a SQLite database at the given path and runs migrations.
// The pool is capped at one connection: SQLite has a single writer, and an
// in-memory database is private to the connection that created it.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
