// Package migrations applies the task store's schema in small, numbered,
// idempotent steps, in the style of the teacher's
// internal/storage/sqlite/migrations package (one function per file,
// each checking PRAGMA table_info / sqlite_master before acting so it
// is safe to re-run against an already-migrated database).
package migrations

import (
	"database/sql"
	"fmt"
)

// step is one migration: a name for logging and the function that
// applies it.
type step struct {
	name string
	fn   func(*sql.DB) error
}

// steps lists every migration in application order. Never reorder or
// remove an entry once released; add new ones at the end.
var steps = []step{
	{"001_initial_schema", migrateInitialSchema},
	{"002_fts5_search_index", migrateFTS5SearchIndex},
	{"003_builtin_howtos_metadata", migrateBuiltinHowtosMetadata},
	{"004_ready_work_index", migrateReadyWorkIndex},
}

// Run applies every migration in order against db. Each step is
// idempotent, so Run is safe to call on every store open.
func Run(db *sql.DB) error {
	for _, s := range steps {
		if err := s.fn(db); err != nil {
			return fmt.Errorf("migration %s: %w", s.name, err)
		}
	}
	return nil
}

// tableExists reports whether name is a table or virtual table in the
// database's sqlite_master.
func tableExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type IN ('table') AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// columnExists reports whether table has a column named column.
func columnExists(db *sql.DB, table, column string) (bool, error) {
	var count int
	// #nosec G201 -- table is always a package-internal constant, never user input
	query := fmt.Sprintf(`SELECT COUNT(*) FROM pragma_table_info('%s') WHERE name = ?`, table)
	err := db.QueryRow(query, column).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// indexExists reports whether name is an index in sqlite_master.
func indexExists(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?`, name).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
