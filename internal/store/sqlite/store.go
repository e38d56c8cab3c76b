// Package sqlite implements the task store contract of §4.2 on top of
// modernc.org/sqlite, the cgo-free driver the teacher repo itself
// depends on. A single *sql.DB with SetMaxOpenConns(1) enforces the
// single-writer discipline described in §5; schema changes are applied
// by internal/store/migrations on every open.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/DRMacIver/claude-reliability-sub001/internal/store/migrations"
)

// Store is the task store: work items, dependencies, notes, how-tos,
// questions, and the audit log, all backed by one SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the database at path, applies
// pending migrations, and syncs the built-in how-to set. The returned
// Store owns db and must be closed with Close.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serializes every write through the database
	// engine itself rather than application-level locking, per §5.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	s := &Store{db: db}
	if err := s.syncBuiltinHowTos(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sync builtin how-tos: %w", err)
	}

	return s, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
