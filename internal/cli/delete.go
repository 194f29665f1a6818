package cli

import (
	"context"
	"fmt"

	"github.com/holdapp/hold/internal/storage"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
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

// executeWithStore runs the deletion against a provided store. Deleting an
// id that does not exist is reported, not failed.
func (c *DeleteCommand) executeWithStore(store storage.Store) error {
	n, err := store.DeleteByID(context.Background(), c.ID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	if n == 0 {
		fmt.Printf("No entry with id %d.\n", c.ID)
		return nil
	}

	fmt.Printf("Deleted entry %d.\n", c.ID)
	return nil
}
