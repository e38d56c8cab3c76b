package migrations

import "database/sql"

// migrateReadyWorkIndex adds a composite index over the columns
// get_ready_tasks filters and sorts by, mirroring the teacher's
// migrations/041_ready_work_index.go performance optimization.
func migrateReadyWorkIndex(db *sql.DB) error {
	exists, err := indexExists(db, "idx_work_items_ready")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(`
		CREATE INDEX idx_work_items_ready
		ON work_items(status, in_progress, priority, created_at)
		WHERE status = 'open' AND in_progress = 0
	`)
	return err
}
