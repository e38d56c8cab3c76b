package migrations

import "database/sql"

// migrateInitialSchema creates the base tables: work_items, dependencies,
// notes, how_tos, work_item_howtos, questions, work_item_questions,
// audit_log, and metadata.
func migrateInitialSchema(db *sql.DB) error {
	exists, err := tableExists(db, "work_items")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(`
		CREATE TABLE work_items (
			id          TEXT PRIMARY KEY,
			title       TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			priority    INTEGER NOT NULL DEFAULT 2,
			status      TEXT NOT NULL DEFAULT 'open',
			in_progress INTEGER NOT NULL DEFAULT 0,
			requested   INTEGER NOT NULL DEFAULT 0,
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_work_items_status ON work_items(status);
		CREATE INDEX idx_work_items_priority ON work_items(priority);
		CREATE INDEX idx_work_items_in_progress ON work_items(in_progress) WHERE in_progress = 1;

		CREATE TABLE dependencies (
			dependent_id  TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
			dependency_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
			PRIMARY KEY (dependent_id, dependency_id)
		);

		CREATE INDEX idx_dependencies_dependency ON dependencies(dependency_id);

		CREATE TABLE notes (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
			content      TEXT NOT NULL,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_notes_work_item ON notes(work_item_id);

		CREATE TABLE how_tos (
			id           TEXT PRIMARY KEY,
			title        TEXT NOT NULL,
			instructions TEXT NOT NULL,
			builtin      INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE work_item_howtos (
			work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
			howto_id     TEXT NOT NULL REFERENCES how_tos(id) ON DELETE CASCADE,
			PRIMARY KEY (work_item_id, howto_id)
		);

		CREATE TABLE questions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			text       TEXT NOT NULL,
			answer     TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE work_item_questions (
			work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
			question_id  INTEGER NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
			PRIMARY KEY (work_item_id, question_id)
		);

		CREATE INDEX idx_wiq_question ON work_item_questions(question_id);

		CREATE TABLE audit_log (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			kind         TEXT NOT NULL,
			work_item_id TEXT NOT NULL DEFAULT '',
			before_json  TEXT NOT NULL DEFAULT '',
			after_json   TEXT NOT NULL DEFAULT '',
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_audit_log_work_item ON audit_log(work_item_id);

		CREATE TABLE metadata (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}
