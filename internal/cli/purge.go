package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/holdapp/hold/internal/storage"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL clipboard history.")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
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

// executeWithStore runs the purge against a provided store.
func (c *PurgeCommand) executeWithStore(store storage.Store) error {
	n, err := store.DeleteAll(context.Background())
	if err != nil {
		return fmt.Errorf("purge history: %w", err)
	}

	fmt.Printf("Deleted %d entries.\n", n)
	return nil
}
