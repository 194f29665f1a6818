package cli

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/holdapp/hold/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// openTestStore creates a migrated in-memory store for command tests.
func openTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// :memory: is per-connection; keep the pool at one so every statement
	// sees the migrated schema.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.NewMigrationRunner(db).Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// seedEntry inserts a clipboard entry and returns it with its assigned id.
func seedEntry(t *testing.T, store *storage.SQLiteStore, content string, copiedAt time.Time) storage.Entry {
	t.Helper()
	e := storage.Entry{Content: content, CopiedAt: copiedAt}
	_, err := store.Insert(context.Background(), &e)
	require.NoError(t, err)
	return e
}
