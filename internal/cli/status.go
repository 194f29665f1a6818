package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/holdapp/hold/internal/auth"
	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version       string         `json:"version"`
	DatabasePath  string         `json:"database_path,omitempty"`
	DatabaseSize  int64          `json:"database_size_bytes,omitempty"`
	TotalEntries  int64          `json:"total_entries"`
	OldestEntry   string         `json:"oldest_entry,omitempty"`
	NewestEntry   string         `json:"newest_entry,omitempty"`
	PerDay        []dayCountJSON `json:"per_day,omitempty"`
	PINConfigured bool           `json:"pin_configured"`
}

type dayCountJSON struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var dbPath string
	store := c.store
	if store == nil {
		s, db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		defer s.Close()
		store = s

		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return err
		}
	}

	pins := auth.NewPINStore(
		cfg.Security.PINMinLength,
		cfg.Security.PINMaxLength,
		logging.New(cfg.Logging.Level, os.Stderr),
	)

	return c.executeWithStore(store, dbPath, pins.Configured())
}

// executeWithStore renders status from a provided store. dbPath may be
// empty when the store did not come from disk.
func (c *StatusCommand) executeWithStore(store storage.Store, dbPath string, pinConfigured bool) error {
	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:       c.version,
			DatabasePath:  dbPath,
			TotalEntries:  stats.TotalEntries,
			PINConfigured: pinConfigured,
		}
		if dbPath != "" {
			out.DatabaseSize = fileSize(dbPath)
		}
		if stats.TotalEntries > 0 {
			out.OldestEntry = stats.OldestEntry.Format("2006-01-02T15:04:05Z07:00")
			out.NewestEntry = stats.NewestEntry.Format("2006-01-02T15:04:05Z07:00")
		}
		for _, d := range stats.PerDay {
			out.PerDay = append(out.PerDay, dayCountJSON{Day: d.Day, Count: d.Count})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Hold %s\n\n", c.version)
	if dbPath != "" {
		fmt.Printf("Database:      %s\n", dbPath)
		fmt.Printf("Size:          %s\n", formatBytes(fileSize(dbPath)))
	}
	fmt.Printf("Entries:       %d\n", stats.TotalEntries)
	if stats.TotalEntries > 0 {
		fmt.Printf("Oldest entry:  %s\n", stats.OldestEntry.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest entry:  %s\n", stats.NewestEntry.Local().Format("2006-01-02 15:04:05"))
	}
	if pinConfigured {
		fmt.Printf("PIN:           configured\n")
	} else {
		fmt.Printf("PIN:           not set\n")
	}

	if len(stats.PerDay) > 0 {
		fmt.Println("\nEntries per day:")
		for _, d := range stats.PerDay {
			fmt.Printf("  %s  %d\n", d.Day, d.Count)
		}
	}
	return nil
}
