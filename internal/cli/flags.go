package cli

import (
	"github.com/holdapp/hold/internal/auth"
	"github.com/holdapp/hold/internal/storage"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RunCommand — run the Hold daemon (clipboard poller + view refresher).
type RunCommand struct {
	globals *GlobalFlags
	version string
}

// HistoryCommand — print clipboard history grouped by day.
type HistoryCommand struct {
	Query string `long:"query" short:"q" description:"Filter entries by substring (case-insensitive)"`
	Type  string `long:"type" description:"Filter by content type"`

	globals *GlobalFlags
	store   storage.Store
}

// SearchCommand — flat newest-first search over stored entries.
type SearchCommand struct {
	Limit int `long:"limit" description:"Maximum results" default:"20"`

	Args struct {
		Query string `positional-arg-name:"query" description:"Substring to search for"`
	} `positional-args:"yes"`

	globals *GlobalFlags
	store   storage.Store
}

// DeleteCommand — delete a single entry by id.
type DeleteCommand struct {
	ID int64 `long:"id" description:"Entry id to delete" required:"yes"`

	globals *GlobalFlags
	store   storage.Store
}

// PurgeCommand — delete ALL clipboard history. Destructive, prompts first.
type PurgeCommand struct {
	All   bool `long:"all" description:"Confirm deleting all history"`
	Force bool `long:"force" description:"Skip the confirmation prompt"`

	globals *GlobalFlags
	store   storage.Store
}

// PinCommand — configure or reset the access PIN.
type PinCommand struct {
	Set   string `long:"set" description:"Set the PIN (4-6 digits)"`
	Reset bool   `long:"reset" description:"Remove the stored PIN"`

	globals *GlobalFlags
	pins    *auth.PINStore
}

// StatusCommand — database stats and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
	store   storage.Store
}
