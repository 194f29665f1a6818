package storage

import "database/sql"

// migrateV002 adds the unique index on content. The index is the storage
// half of the dedup gate: a check-then-insert done as two statements can
// race with the background poller, so duplicates are rejected here instead.
// Pre-existing duplicates (from databases created before the index) are
// collapsed to the newest row first, otherwise index creation would fail.
func migrateV002(tx *sql.Tx) error {
	stmts := []string{
		`DELETE FROM clipboard_entries WHERE id NOT IN (
			SELECT MAX(id) FROM clipboard_entries GROUP BY content
		)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_content ON clipboard_entries(content)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
