package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/holdapp/hold/internal/storage"
	"github.com/holdapp/hold/internal/viewstate"
)

// historyJSON is the JSON output structure for the history command.
type historyJSON struct {
	Sections []sectionJSON `json:"sections"`
}

type sectionJSON struct {
	Title string      `json:"title"`
	Items []entryJSON `json:"items"`
}

type entryJSON struct {
	ID          int64  `json:"id"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	CopiedAt    string `json:"copied_at"`
	Metadata    string `json:"metadata,omitempty"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
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

// executeWithStore runs the history listing against a provided store.
func (c *HistoryCommand) executeWithStore(store storage.Store) error {
	ctx := context.Background()

	views := viewstate.New()
	if err := views.ReloadFrom(ctx, store); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	views.ApplySearch(c.Query)
	sections := views.Visible()

	if c.Type != "" {
		sections = filterByType(sections, c.Type)
	}

	if c.globals != nil && c.globals.JSON {
		return printHistoryJSON(sections)
	}
	return printHistoryHuman(sections)
}

// filterByType drops items whose content type does not match, removing
// buckets left empty.
func filterByType(sections []viewstate.Section, contentType string) []viewstate.Section {
	var out []viewstate.Section
	for _, s := range sections {
		var items []storage.Entry
		for _, e := range s.Items {
			if e.ContentType == contentType {
				items = append(items, e)
			}
		}
		if len(items) > 0 {
			out = append(out, viewstate.Section{Title: s.Title, Items: items})
		}
	}
	return out
}

func printHistoryJSON(sections []viewstate.Section) error {
	out := historyJSON{Sections: []sectionJSON{}}
	for _, s := range sections {
		sec := sectionJSON{Title: s.Title, Items: []entryJSON{}}
		for _, e := range s.Items {
			sec.Items = append(sec.Items, entryJSON{
				ID:          e.ID,
				Content:     e.Content,
				ContentType: e.ContentType,
				CopiedAt:    e.CopiedAt.Format("2006-01-02T15:04:05Z07:00"),
				Metadata:    e.Metadata,
			})
		}
		out.Sections = append(out.Sections, sec)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printHistoryHuman(sections []viewstate.Section) error {
	if len(sections) == 0 {
		fmt.Println("No clipboard history.")
		return nil
	}

	for _, s := range sections {
		fmt.Println(s.Title)
		for _, e := range s.Items {
			fmt.Printf("  [%d] %s  %s\n", e.ID, formatTime(e.CopiedAt), truncateContent(e.Content, 60))
		}
		fmt.Println()
	}
	return nil
}
