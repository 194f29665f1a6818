package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/holdapp/hold/internal/storage"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	if c.Args.Query == "" {
		return fmt.Errorf("search requires a query argument")
	}

	store := c.store
	if store == nil {
		s, db, err := openStoreFromGlobals(c.globals)
		if err != nil {
			return err
		}
		defer db.Close()
		defer s.Close()
		store = s
	}

	return c.executeWithStore(store)
}

// executeWithStore runs the search against a provided store.
func (c *SearchCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	entries, err := store.Query(ctx, storage.Filter{
		Contains: c.Args.Query,
		Limit:    c.Limit,
	})
	if err != nil {
		return fmt.Errorf("search entries: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{
				ID:          e.ID,
				Content:     e.Content,
				ContentType: e.ContentType,
				CopiedAt:    e.CopiedAt.Format("2006-01-02T15:04:05Z07:00"),
				Metadata:    e.Metadata,
			})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(entries) == 0 {
		fmt.Printf("No entries matching %q.\n", c.Args.Query)
		return nil
	}

	for _, e := range entries {
		fmt.Printf("[%d] %s %s  %s\n",
			e.ID,
			e.CopiedAt.Local().Format("2006-01-02"),
			formatTime(e.CopiedAt),
			truncateContent(e.Content, 60),
		)
	}
	return nil
}
