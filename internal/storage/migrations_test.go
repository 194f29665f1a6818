package storage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrationRunner_FreshDB(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	err := runner.Run()
	require.NoError(t, err)

	expectedTables := []string{
		"clipboard_entries",
		"schema_migrations",
	}
	for _, table := range expectedTables {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrationRunner_IndexesCreated(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	expectedIndexes := []string{
		"idx_entries_copied_at",
		"idx_entries_content_type",
		"idx_entries_content",
	}
	for _, idx := range expectedIndexes {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", idx,
		).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrationRunner_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Running N times must leave a single table and the version at the
	// latest defined migration.
	for i := 0; i < 4; i++ {
		runner := NewMigrationRunner(db)
		require.NoError(t, runner.Run(), "run %d", i)
	}

	var tableCount int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='clipboard_entries'",
	).Scan(&tableCount)
	require.NoError(t, err)
	assert.Equal(t, 1, tableCount)

	var recorded int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&recorded)
	require.NoError(t, err)
	assert.Equal(t, 2, recorded, "each migration recorded exactly once")

	runner := NewMigrationRunner(db)
	version, err := runner.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestMigrationRunner_VersionOnFreshDB(t *testing.T) {
	db := openTestDB(t)
	runner := NewMigrationRunner(db)

	// Version is only defined after Run has created schema_migrations.
	require.NoError(t, runner.Run())

	version, err := runner.Version()
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestMigrationV002_CollapsesPreexistingDuplicates(t *testing.T) {
	db := openTestDB(t)

	// Simulate a v1 database that accumulated duplicate content before the
	// unique index existed.
	runner := &MigrationRunner{
		db: db,
		migrations: []migration{
			{Version: 1, Name: "initial_schema", Apply: migrateV001},
		},
	}
	require.NoError(t, runner.Run())

	for i := 0; i < 3; i++ {
		_, err := db.Exec(
			"INSERT INTO clipboard_entries (content, content_type) VALUES ('dup', 'text')",
		)
		require.NoError(t, err)
	}

	full := NewMigrationRunner(db)
	require.NoError(t, full.Run())

	var count int
	var maxID int64
	err := db.QueryRow(
		"SELECT COUNT(*), MAX(id) FROM clipboard_entries WHERE content = 'dup'",
	).Scan(&count, &maxID)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "duplicates collapsed")
	assert.Equal(t, int64(3), maxID, "newest row survives")
}

func TestMigrationRunner_FailedMigrationDoesNotAdvanceVersion(t *testing.T) {
	db := openTestDB(t)

	runner := &MigrationRunner{
		db: db,
		migrations: []migration{
			{Version: 1, Name: "initial_schema", Apply: migrateV001},
			{Version: 2, Name: "broken", Apply: func(tx *sql.Tx) error {
				_, err := tx.Exec("THIS IS NOT SQL")
				return err
			}},
		},
	}

	err := runner.Run()
	require.Error(t, err)

	version, verr := runner.Version()
	require.NoError(t, verr)
	assert.Equal(t, 1, version, "failed migration must not be recorded")
}
