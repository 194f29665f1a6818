package cli

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/holdapp/hold/internal/config"
	"github.com/holdapp/hold/internal/storage"
)

// loadConfig resolves the config for a command, honoring --config.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the configured SQLite database with migrations applied
// and returns a ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	if err := storage.NewMigrationRunner(db).Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init store: %w", err)
	}

	return store, db, nil
}

// openStoreFromGlobals is the common command preamble: config, then store.
func openStoreFromGlobals(globals *GlobalFlags) (*storage.SQLiteStore, *sql.DB, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return openStore(cfg)
}

// formatBytes renders a byte count in human units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// truncateContent shortens long entries for single-line display.
func truncateContent(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// fileSize returns the size of path, or 0 if it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// formatTime renders a timestamp for listings.
func formatTime(t time.Time) string {
	return t.Local().Format("15:04:05")
}
