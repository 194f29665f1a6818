package storage

import "database/sql"

// migrateV001 creates the initial Hold schema. Every statement uses
// IF NOT EXISTS so re-running against a half-created database is safe.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS clipboard_entries (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			content      TEXT NOT NULL,
			content_type TEXT NOT NULL DEFAULT 'text',
			copied_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			metadata     TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_entries_copied_at    ON clipboard_entries(copied_at)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_content_type ON clipboard_entries(content_type)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
