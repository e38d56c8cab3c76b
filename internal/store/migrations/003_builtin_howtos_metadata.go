package migrations

import "database/sql"

// migrateBuiltinHowtosMetadata seeds the metadata row the built-in
// how-to sync reads on every store open (internal/store/sqlite/builtin.go).
// A missing row is treated by that code as version 0, so this migration
// only needs to exist for symmetry with the teacher's convention of
// giving every tracked metadata key an explicit migration.
func migrateBuiltinHowtosMetadata(db *sql.DB) error {
	exists, err := columnExists(db, "metadata", "key")
	if err != nil {
		return err
	}
	if !exists {
		// metadata table predates this migration's numbering scheme in
		// some upgrade paths; nothing to do if it's already absent,
		// 001 will have created it on a fresh database.
		return nil
	}

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM metadata WHERE key = 'builtin_howtos_version'`).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err = db.Exec(`INSERT INTO metadata(key, value) VALUES ('builtin_howtos_version', '0')`)
	return err
}
