package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Run     *RunCommand
	History *HistoryCommand
	Search  *SearchCommand
	Delete  *DeleteCommand
	Purge   *PurgeCommand
	Pin     *PinCommand
	Status  *StatusCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "hold"
	parser.LongDescription = "Persistent, PIN-locked clipboard history: capture, browse, search, and delete what you copy."

	cmds := &commands{
		Run:     &RunCommand{globals: &globals, version: version},
		History: &HistoryCommand{globals: &globals},
		Search:  &SearchCommand{globals: &globals},
		Delete:  &DeleteCommand{globals: &globals},
		Purge:   &PurgeCommand{globals: &globals},
		Pin:     &PinCommand{globals: &globals},
		Status:  &StatusCommand{globals: &globals, version: version},
	}

	parser.AddCommand("run", "Run the Hold daemon", "Run the clipboard poller and view refresher until interrupted.", cmds.Run)
	parser.AddCommand("history", "Show clipboard history by day", "Print clipboard history grouped into calendar-day sections, optionally filtered.", cmds.History)
	parser.AddCommand("search", "Search stored entries", "Search stored entries by substring, newest first.", cmds.Search)
	parser.AddCommand("delete", "Delete one entry", "Delete a single history entry by id.", cmds.Delete)
	parser.AddCommand("purge", "Delete ALL history", "Delete ALL clipboard history. Destructive operation with safety prompt.", cmds.Purge)
	parser.AddCommand("pin", "Manage the access PIN", "Set, reset, or inspect the access PIN stored in the platform keyring.", cmds.Pin)
	parser.AddCommand("status", "Show database statistics", "Show database statistics and configuration summary.", cmds.Status)

	return parser, &globals, cmds
}

// Run is the main entry point for the Hold CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the
// matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("hold %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
