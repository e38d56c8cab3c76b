package migrations

import "database/sql"

// migrateFTS5SearchIndex adds an FTS5 virtual table holding its own copy of
// work item title/description plus concatenated note content, and the
// triggers that keep it synchronized. The table is not contentless
// (no content=''): DELETE/UPDATE against it are only valid on a
// self-contained or external-content FTS5 table, and the `id` column
// must be a real stored value for internal/store/sqlite/search.go to
// join back to work_items. Ranking at query time uses bm25(); see
// internal/store/sqlite/search.go.
func migrateFTS5SearchIndex(db *sql.DB) error {
	exists, err := tableExists(db, "work_items_fts")
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(`
		CREATE VIRTUAL TABLE work_items_fts USING fts5(
			id UNINDEXED,
			title,
			description,
			notes,
			tokenize='porter unicode61'
		);

		CREATE TRIGGER trg_work_items_fts_insert
		AFTER INSERT ON work_items
		BEGIN
			INSERT INTO work_items_fts(id, title, description, notes)
			VALUES (new.id, new.title, new.description, '');
		END;

		CREATE TRIGGER trg_work_items_fts_update
		AFTER UPDATE OF title, description ON work_items
		BEGIN
			DELETE FROM work_items_fts WHERE id = old.id;
			INSERT INTO work_items_fts(id, title, description, notes)
			SELECT new.id, new.title, new.description, COALESCE(
				(SELECT group_concat(content, ' ') FROM notes WHERE work_item_id = new.id), ''
			);
		END;

		CREATE TRIGGER trg_work_items_fts_delete
		AFTER DELETE ON work_items
		BEGIN
			DELETE FROM work_items_fts WHERE id = old.id;
		END;

		CREATE TRIGGER trg_notes_fts_sync_insert
		AFTER INSERT ON notes
		BEGIN
			DELETE FROM work_items_fts WHERE id = new.work_item_id;
			INSERT INTO work_items_fts(id, title, description, notes)
			SELECT id, title, description,
				(SELECT group_concat(content, ' ') FROM notes WHERE work_item_id = new.work_item_id)
			FROM work_items WHERE id = new.work_item_id;
		END;

		CREATE TRIGGER trg_notes_fts_sync_delete
		AFTER DELETE ON notes
		BEGIN
			DELETE FROM work_items_fts WHERE id = old.work_item_id;
			INSERT INTO work_items_fts(id, title, description, notes)
			SELECT id, title, description,
				COALESCE((SELECT group_concat(content, ' ') FROM notes WHERE work_item_id = old.work_item_id), '')
			FROM work_items WHERE id = old.work_item_id;
		END;
	`)
	return err
}
